package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mobildev/online-exam/internal/exam"
)

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		exam.ErrNotFound:                                   http.StatusNotFound,
		fmt.Errorf("%w: exam_id", exam.ErrValidation):      http.StatusBadRequest,
		fmt.Errorf("%w: %q", exam.ErrUnknownUser, "ghost"): http.StatusBadRequest,
		exam.ErrMalformedData:                              http.StatusInternalServerError,
		exam.StorageError("save", errors.New("disk")):      http.StatusInternalServerError,
		errors.New("anything else"):                        http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}
