package formula

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"physcalc/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T, rates RateLookup) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, newTestProcessor(t, rates))
	return r
}

func postFormula(t *testing.T, h http.Handler, name, body string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.ExecuteRequest(testutil.PostJSON("/formulas/"+name, body), h)
}

func TestEvaluateHandlerSuccess(t *testing.T) {
	h := newAPI(t, nil)

	rr := postFormula(t, h, "kinetic_energy", `{"inputs": {"mass": 2, "velocity": "3"}}`)
	testutil.CheckResponseCode(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ResultResponse
	testutil.DecodeJSONBody(t, rr.Body, &resp)
	assert.Equal(t, "kinetic_energy", resp.Endpoint)
	assert.Equal(t, 9.0, resp.Values["ke"])
	assert.Equal(t, map[string]string{"mass": "2", "velocity": "3"}, resp.Inputs)
}

func TestEvaluateHandlerSelector(t *testing.T) {
	h := newAPI(t, nil)

	rr := postFormula(t, h, "ideal_gas_law", `{"selector": "volume", "inputs": {"moles": "1", "temperature": "300", "pressure": "249420"}}`)
	testutil.CheckResponseCode(t, http.StatusOK, rr.Code)

	var resp ResultResponse
	testutil.DecodeJSONBody(t, rr.Body, &resp)
	assert.Equal(t, "volume", resp.Selector)
	assert.Equal(t, 0.01, resp.Values["volume"])
}

func TestEvaluateHandlerValidationFailure(t *testing.T) {
	h := newAPI(t, nil)

	rr := postFormula(t, h, "heat_engine", `{"inputs": {"q1": "600", "q2": "1000"}}`)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, rr.Code)

	var resp ErrorResponse
	testutil.DecodeJSONBody(t, rr.Body, &resp)
	assert.Equal(t, DefaultMessage, resp.Error)
	assert.Equal(t, KindValidation, resp.Kind)
	assert.Equal(t, "Q2 must be less than Q1", resp.Detail)
}

func TestEvaluateHandlerFieldDetail(t *testing.T) {
	h := newAPI(t, nil)

	rr := postFormula(t, h, "kinetic_energy", `{"inputs": {"mass": "heavy", "velocity": "3"}}`)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, rr.Code)

	var resp ErrorResponse
	testutil.DecodeJSONBody(t, rr.Body, &resp)
	assert.Equal(t, "mass must be a number", resp.Detail)
}

func TestEvaluateHandlerCollaboratorFailure(t *testing.T) {
	h := newAPI(t, &fakeRates{err: errors.New("timeout")})

	rr := postFormula(t, h, "currency_conversion", `{"inputs": {"amount": "10", "from_currency": "USD", "to_currency": "EUR"}}`)
	testutil.CheckResponseCode(t, http.StatusBadGateway, rr.Code)

	var resp ErrorResponse
	testutil.DecodeJSONBody(t, rr.Body, &resp)
	assert.Equal(t, "Conversion failed", resp.Error)
	assert.Equal(t, KindCollaborator, resp.Kind)
	assert.Equal(t, "exchange_rates unavailable", resp.Detail)
	assert.NotContains(t, rr.Body.String(), "timeout")
}

func TestEvaluateHandlerUnknownFormula(t *testing.T) {
	h := newAPI(t, nil)

	rr := postFormula(t, h, "warp_drive", `{"inputs": {}}`)
	testutil.CheckResponseCode(t, http.StatusNotFound, rr.Code)
}

func TestEvaluateHandlerBadBody(t *testing.T) {
	h := newAPI(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `mass=2`},
		{name: "bool input", body: `{"inputs": {"mass": true, "velocity": 3}}`},
		{name: "inputs not an object", body: `{"inputs": [1, 2]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postFormula(t, h, "kinetic_energy", tc.body)
			testutil.CheckResponseCode(t, http.StatusBadRequest, rr.Code)

			var resp map[string]string
			testutil.DecodeJSONBody(t, rr.Body, &resp)
			assert.Equal(t, "invalid request body", resp["error"])
		})
	}
}

func TestEvaluateHandlerBodyTooLarge(t *testing.T) {
	h := newAPI(t, nil)

	body := `{"inputs": {"mass": 2, "velocity": 3, "note": "` + strings.Repeat("x", maxBodyBytes) + `"}}`
	rr := postFormula(t, h, "kinetic_energy", body)
	testutil.CheckResponseCode(t, http.StatusRequestEntityTooLarge, rr.Code)

	var resp map[string]string
	testutil.DecodeJSONBody(t, rr.Body, &resp)
	assert.Equal(t, "request body too large", resp["error"])
}

func TestListHandler(t *testing.T) {
	h := newAPI(t, nil)

	rr := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/formulas/", nil), h)
	testutil.CheckResponseCode(t, http.StatusOK, rr.Code)

	var infos []EndpointInfo
	testutil.DecodeJSONBody(t, rr.Body, &infos)
	require.NotEmpty(t, infos)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "projectile")
	assert.Contains(t, names, "currency_conversion")
}

func TestRawInputsNullIsAbsent(t *testing.T) {
	h := newAPI(t, nil)

	rr := postFormula(t, h, "potential_energy", `{"inputs": {"mass": 2, "height": 10, "gravity": null}}`)
	testutil.CheckResponseCode(t, http.StatusOK, rr.Code)

	var resp ResultResponse
	testutil.DecodeJSONBody(t, rr.Body, &resp)
	assert.InDelta(t, 196.0, resp.Values["pe"], 1e-9)
}
