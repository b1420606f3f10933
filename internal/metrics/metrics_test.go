package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/cart/{itemId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := Middleware(mux, mux)
	counter := httpRequestsTotal.WithLabelValues("404", http.MethodDelete, "DELETE /api/cart/{itemId}")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b", "c"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/cart/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(httpRequestsInFlight))
}

func TestMiddlewareUnmatchedRoute(t *testing.T) {
	mux := http.NewServeMux()
	handler := Middleware(mux, mux)
	counter := httpRequestsTotal.WithLabelValues("404", http.MethodGet, "unmatched")
	before := testutil.ToFloat64(counter)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestDomainCounters(t *testing.T) {
	mutation := cartMutationsTotal.WithLabelValues("add_item", ResultOK)
	mutationsBefore := testutil.ToFloat64(mutation)
	conflictsBefore := testutil.ToFloat64(cartWriteConflictsTotal)
	checkout := checkoutsTotal.WithLabelValues(ResultOK)
	checkoutsBefore := testutil.ToFloat64(checkout)

	RecordCartMutation("add_item", ResultOK)
	RecordCartWriteConflict()
	RecordCheckout(ResultOK, 25)
	RecordCheckout(ResultRejected, 0)

	assert.Equal(t, mutationsBefore+1, testutil.ToFloat64(mutation))
	assert.Equal(t, conflictsBefore+1, testutil.ToFloat64(cartWriteConflictsTotal))
	assert.Equal(t, checkoutsBefore+1, testutil.ToFloat64(checkout))
	assert.Equal(t, float64(1), testutil.ToFloat64(checkoutsTotal.WithLabelValues(ResultRejected)))
}
