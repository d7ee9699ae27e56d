package netsis_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhardaks/wms-netsis-entegre-sub001/internal/infrastructure/netsis"
)

func TestCreateDispatchLines(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody struct {
		OrderRef string        `json:"order_ref"`
		Lines    []netsis.Line `json:"lines"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"note_id": "IRS-42"})
	}))
	defer srv.Close()

	client := netsis.NewRESTClient(srv.URL, "clave-secreta")
	noteID, err := client.CreateDispatchLines(context.Background(), "SO-1001", []netsis.Line{
		{StockCode: "NET-CAMA-90", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "IRS-42", noteID)
	assert.Equal(t, "/api/v2/dispatches", gotPath)
	assert.Equal(t, "Bearer clave-secreta", gotAuth)
	assert.Equal(t, "SO-1001", gotBody.OrderRef)
	require.Len(t, gotBody.Lines, 1)
	assert.Equal(t, 3, gotBody.Lines[0].Quantity)
}

func TestConvertOrderToDispatch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"note_id": "IRS-77"})
	}))
	defer srv.Close()

	client := netsis.NewRESTClient(srv.URL, "")
	noteID, err := client.ConvertOrderToDispatch(context.Background(), "SO-1001")
	require.NoError(t, err)
	assert.Equal(t, "IRS-77", noteID)
	assert.Equal(t, "/api/v2/orders/SO-1001/convert", gotPath)
}

func TestRejectionWithCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "ORDER_NOT_FOUND",
			"message": "sipariş bulunamadı",
		})
	}))
	defer srv.Close()

	client := netsis.NewRESTClient(srv.URL, "")
	_, err := client.CreateDispatchLines(context.Background(), "SO-X", nil)
	require.Error(t, err)
	assert.True(t, netsis.IsRejection(err))
	assert.True(t, netsis.IsOrderUnknown(err))
	assert.Contains(t, err.Error(), "ORDER_NOT_FOUND")
	assert.Contains(t, err.Error(), "sipariş bulunamadı")
}

func TestRejectionUnstructuredBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer srv.Close()

	client := netsis.NewRESTClient(srv.URL, "")
	_, err := client.CreateDispatchLines(context.Background(), "SO-X", nil)
	require.Error(t, err)
	assert.True(t, netsis.IsRejection(err))
	assert.False(t, netsis.IsOrderUnknown(err))
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestResponseWithoutNoteID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	client := netsis.NewRESTClient(srv.URL, "")
	_, err := client.CreateDispatchLines(context.Background(), "SO-X", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "note_id")
}

func TestTransportErrorIsNotRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // servidor caído

	client := netsis.NewRESTClient(srv.URL, "")
	_, err := client.CreateDispatchLines(context.Background(), "SO-X", nil)
	require.Error(t, err)
	assert.False(t, netsis.IsRejection(err))
}
