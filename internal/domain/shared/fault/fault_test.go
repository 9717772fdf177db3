package fault_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/internal/domain/shared/fault"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, fault.KindInvalidArgument, fault.KindOf(fault.InvalidArgument("bad")))
	assert.Equal(t, fault.KindConflict, fault.KindOf(fault.Conflict("busy")))
	assert.Equal(t, fault.KindNotFound, fault.KindOf(fault.NotFound("gone")))
	assert.Equal(t, fault.KindInternal, fault.KindOf(errors.New("plain")))
}

func TestWrapping(t *testing.T) {
	cause := errors.New("disk failed")
	err := fault.Internal("delete dependents", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "delete dependents", fault.MessageOf(err))

	wrapped := fmt.Errorf("service: %w", fault.Conflict("overlaps existing booking"))
	assert.True(t, fault.IsKind(wrapped, fault.KindConflict))
	assert.Equal(t, "overlaps existing booking", fault.MessageOf(wrapped))
}
