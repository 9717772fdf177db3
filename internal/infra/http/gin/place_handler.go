package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/policies"
	"stayhub/internal/app/services/places"
	domainplace "stayhub/internal/domain/place"
)

// maxPhotoBytes caps a single uploaded image.
const maxPhotoBytes = 10 << 20

type PlaceHandler struct {
	Service *places.Service
	Logger  *slog.Logger
}

type placeRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Area        float64 `json:"area"`
	CostPerDay  int64   `json:"cost_per_day"`
	Type        string  `json:"type"`
	BedAmount   int     `json:"bed_amount"`
	MaxPersons  int     `json:"max_persons"`
	Rooms       struct {
		Bedrooms  int `json:"bedrooms"`
		Bathrooms int `json:"bathrooms"`
	} `json:"rooms"`
	Amenities struct {
		Wifi            bool `json:"wifi"`
		AirConditioning bool `json:"air_conditioning"`
		Heating         bool `json:"heating"`
		Kitchen         bool `json:"kitchen"`
		Television      bool `json:"television"`
		Parking         bool `json:"parking"`
		Elevator        bool `json:"elevator"`
		SittingPlace    bool `json:"sitting_place"`
	} `json:"amenities"`
	Rules struct {
		Smoking bool `json:"smoking"`
		Pets    bool `json:"pets"`
		Events  bool `json:"events"`
	} `json:"rules"`
	Location struct {
		Lat           float64 `json:"lat"`
		Lon           float64 `json:"lon"`
		Address       string  `json:"address"`
		Neighbourhood string  `json:"neighbourhood"`
		Transport     string  `json:"transport"`
	} `json:"location"`
}

func (r placeRequest) rooms() domainplace.Rooms {
	return domainplace.Rooms(r.Rooms)
}

func (r placeRequest) amenities() domainplace.Amenities {
	return domainplace.Amenities(r.Amenities)
}

func (r placeRequest) rules() domainplace.Rules {
	return domainplace.Rules(r.Rules)
}

func (r placeRequest) location() domainplace.Location {
	return domainplace.Location(r.Location)
}

func (h *PlaceHandler) Create(c *gin.Context) {
	p, ok := requireCapability(c, policies.ActionPublishPlace, policies.Resource{})
	if !ok {
		return
	}
	var req placeRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.Service.Create(c.Request.Context(), places.CreateParams{
		OwnerID:     p.ID,
		Name:        req.Name,
		Description: req.Description,
		Area:        req.Area,
		CostPerDay:  req.CostPerDay,
		Type:        req.Type,
		BedAmount:   req.BedAmount,
		MaxPersons:  req.MaxPersons,
		Rooms:       req.rooms(),
		Amenities:   req.amenities(),
		Rules:       req.rules(),
		Location:    req.location(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.NewPlace(created))
}

func (h *PlaceHandler) Get(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewPlace(p))
}

func (h *PlaceHandler) ListMine(c *gin.Context) {
	p, ok := requireCapability(c, policies.ActionManagePlace, policies.Resource{})
	if !ok {
		return
	}
	items, err := h.Service.ListByOwner(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewPlaces(items))
}

func (h *PlaceHandler) Update(c *gin.Context) {
	p, ok := requireCapability(c, policies.ActionManagePlace, policies.Resource{})
	if !ok {
		return
	}
	var req placeRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Service.Update(c.Request.Context(), places.UpdateParams{
		PlaceID:     c.Param("id"),
		OwnerID:     p.ID,
		Name:        req.Name,
		Description: req.Description,
		Area:        req.Area,
		CostPerDay:  req.CostPerDay,
		Type:        req.Type,
		BedAmount:   req.BedAmount,
		MaxPersons:  req.MaxPersons,
		Rooms:       req.rooms(),
		Amenities:   req.amenities(),
		Rules:       req.rules(),
		Location:    req.location(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewPlace(updated))
}

func (h *PlaceHandler) Delete(c *gin.Context) {
	p, ok := requireCapability(c, policies.ActionManagePlace, policies.Resource{})
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), p.ID); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

// UploadPhoto accepts a multipart form with a "photo" file field and an
// optional "main" flag.
func (h *PlaceHandler) UploadPhoto(c *gin.Context) {
	p, ok := requireCapability(c, policies.ActionManagePlace, policies.Resource{})
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "photo file is required")
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		respondMessage(c, http.StatusBadRequest, "photo is too large")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "cannot read photo file")
		return
	}
	defer file.Close()

	created, err := h.Service.UploadPhoto(c.Request.Context(), places.UploadPhotoParams{
		PlaceID:     c.Param("id"),
		OwnerID:     p.ID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
		Main:        c.PostForm("main") == "true",
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.NewPhoto(created))
}

// GetPhoto redirects to the stored object URL.
func (h *PlaceHandler) GetPhoto(c *gin.Context) {
	ph, err := h.Service.GetPhoto(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, ph.URL)
}

func (h *PlaceHandler) RemovePhoto(c *gin.Context) {
	p, ok := requireCapability(c, policies.ActionManagePlace, policies.Resource{})
	if !ok {
		return
	}
	if err := h.Service.RemovePhoto(c.Request.Context(), c.Param("id"), p.ID, c.Param("photoID")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
