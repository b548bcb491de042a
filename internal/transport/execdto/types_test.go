package execdto

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/app"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/registry"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/stepfilter"
)

func TestDecode(t *testing.T) {
	in, err := Decode([]byte(`{"input":[3,1,2],"filter":"operation == \"swap\""}`))
	require.NoError(t, err)
	assert.JSONEq(t, `[3,1,2]`, string(in.Input))
	assert.Equal(t, `operation == "swap"`, in.Options().Filter)

	for _, body := range []string{`{}`, `{"input":null}`, `{"filter":"true"}`} {
		_, err := Decode([]byte(body))
		assert.ErrorIs(t, err, ErrMissingInput, body)
	}

	_, err = Decode([]byte(`{`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("%w: x", registry.ErrUnknownAlgorithm), http.StatusNotFound},
		{ErrMissingInput, http.StatusBadRequest},
		{ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
		{errors.Join(ErrInvalidJSON, errors.New("eof")), http.StatusBadRequest},
		{fmt.Errorf("%w: bad", registry.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: bad", stepfilter.ErrInvalidFilter), http.StatusBadRequest},
		{app.ErrStepBudgetExceeded, http.StatusBadRequest},
		{registry.Fault("boom"), http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), "%v", tc.err)
	}
}

func TestErrorHidesFaultDetails(t *testing.T) {
	body := Error(registry.Fault("index out of range"))
	assert.Equal(t, "execution failed", body.Error)
	assert.Empty(t, body.Details)

	body = Error(fmt.Errorf("%w: bad", stepfilter.ErrInvalidFilter))
	assert.Equal(t, "invalid filter", body.Error)
	assert.Contains(t, body.Details, "bad")
}
