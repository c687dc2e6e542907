package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"

	"github.com/payrollhq/taxplanner/internal/calculation"
)

func TestEmployeeDetails_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, EmployeeDetailsPath+"/58368", r.URL.Path)
		fmt.Fprint(w, `{"success":true,"data":{
			"id":65,"employeeName":"Asha Rao","employeeNumber":"E042",
			"totalEarnings":1500000,"pf":90000,"vpf":10000,
			"npsMaxLimit":120000,"npsMaxLimitOld":80000,"npsMaxLimitNew":112000,
			"isFySwitch":1,
			"fbp":[{"payHeadID":7,"payHeadName":"Fuel","amount":0,"maxLimit":50000,"allowedTaxRegime":1,"criteriaOption":"Car"}]
		}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	emp, err := c.EmployeeDetails(context.Background(), "58368")

	assert.NoError(t, err)
	assert.Equal(t, "Asha Rao", emp.EmployeeName)
	assert.True(t, emp.TotalEarnings.IntPart() == 1500000)
	assert.True(t, emp.WindowOpen())
	assert.Len(t, emp.FBP, 1)
	assert.Equal(t, "Fuel", emp.FBP[0].PayHeadName)
	assert.True(t, emp.FBP[0].Bounded())
}

func TestEmployeeDetails_SemanticFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"message":"employee not found"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.EmployeeDetails(context.Background(), "0")

	assert.Error(t, err)
	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "employee not found", apiErr.Message)
	assert.Equal(t, "employee not found", UserMessage(err))
}

func TestComputeTax_Success(t *testing.T) {
	var got calculation.ComputeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, IncomeTaxPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"success":true,"data":{
			"oldRegime":{"grossIncome":1500000,"totalTaxWithCess":195000,"taxSlabs":[]},
			"newRegime":{"grossIncome":1500000,"totalTaxWithCess":145600,"taxSlabs":[]},
			"suggestion":"NEW","savings":49400
		}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	payload := calculation.ComputeRequest{
		FinancialYear: "2025-2026",
		IncomeDetails: calculation.IncomeDetails{TotalEarnings: 1500000, UserIDs: "58368"},
	}
	res, err := c.ComputeTax(context.Background(), payload)

	assert.NoError(t, err)
	assert.Equal(t, "NEW", res.Suggestion)
	assert.True(t, res.Savings.IntPart() == 49400)
	assert.Equal(t, "2025-2026", got.FinancialYear)
	assert.Equal(t, "58368", got.IncomeDetails.UserIDs)
}

func TestComputeTax_FailureVariants(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			"semantic failure with message",
			func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"success":false,"message":"Invalid financial year"}`)
			},
			"Invalid financial year",
		},
		{
			"semantic failure without message",
			func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"success":false}`)
			},
			GenericComputeError,
		},
		{
			"http error with non-JSON body",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				fmt.Fprint(w, "upstream exploded")
			},
			GenericComputeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, nil)
			_, err := c.ComputeTax(context.Background(), calculation.ComputeRequest{})

			assert.Error(t, err)
			assert.Equal(t, tt.wantMsg, UserMessage(err))
		})
	}
}

func TestComputeTax_TransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", nil)
	_, err := c.ComputeTax(context.Background(), calculation.ComputeRequest{})
	assert.Error(t, err)
	assert.Equal(t, GenericComputeError, UserMessage(err))
}

func TestSubmitRating_FireAndForget(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	c.SubmitRating(context.Background(), "58368", 4)
	assert.Equal(t, RatingPath+"/58368/4", path)

	// Failures must not panic or propagate.
	bad := NewClient("http://127.0.0.1:1", nil)
	bad.SubmitRating(context.Background(), "58368", 5)
}
