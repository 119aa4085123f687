package contract_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tailscan/internal/registry/providers"
	"tailscan/internal/registry/providers/contract"
	"tailscan/internal/tailnumber"
)

func TestStrictProviderContract(t *testing.T) {
	suite := contract.ContractSuite{
		ProviderID: "strict-CA",
		Tests: []contract.ContractTest{
			{Name: "never finds", Provider: providers.NewStrict(tailnumber.CountryCA), TailNumber: "C-GWKQ"},
		},
	}
	suite.Run(t)
}

func TestHTTPProviderContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TailNumber string `json:"tail_number"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch req.TailNumber {
		case "N904GS":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"found":               true,
				"verification_status": "VERIFIED",
				"data": map[string]string{
					"n_number":      "904GS",
					"mfr_mdl_code":  "CIRRUS DESIGN CORP",
					"eng_mfr_mdl":   "SR22",
					"serial_number": "3301",
					"year_mfr":      "2008",
					"name":          "GS AVIATION LLC",
				},
			})
		case "N500XX":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"found": false})
		}
	}))
	t.Cleanup(srv.Close)

	p := providers.NewHTTPDiscovery("faa-live", tailnumber.CountryUS, srv.URL)
	suite := contract.ContractSuite{
		ProviderID: "faa-live",
		Tests: []contract.ContractTest{
			{Name: "found", Provider: p, TailNumber: "N904GS", ExpectFound: true},
			{Name: "absent", Provider: p, TailNumber: "N1"},
		},
	}
	suite.Run(t)

	outage := contract.ErrorContractTest{
		Name:          "outage",
		Provider:      p,
		TailNumber:    "N500XX",
		ExpectedError: providers.ErrorProviderOutage,
		ExpectedRetry: true,
	}
	outage.Run(t)
}
