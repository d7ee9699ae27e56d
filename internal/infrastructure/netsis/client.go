// Package netsis implementa el cliente REST hacia el ERP Netsis para la
// creación de remisiones (irsaliye). Expone las dos operaciones que soportan
// las dos estrategias de sincronización:
//
//   - CreateDispatchLines: crea la remisión línea a línea con las cantidades
//     que manda el almacén (estrategia manual, preferida).
//   - ConvertOrderToDispatch: pide a Netsis convertir su propio pedido en
//     remisión; usa las cantidades que Netsis recuerda (fallback degradado).
package netsis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Line es una línea de remisión con las cantidades reales del almacén.
type Line struct {
	StockCode string `json:"stock_code"`
	Quantity  int    `json:"quantity"`
}

// Client define el puerto de salida hacia Netsis. La implementación concreta
// usa REST; para tests se inyecta un fake.
type Client interface {
	// CreateDispatchLines crea una remisión para orderRef con las líneas dadas
	// y devuelve el ID de la nota creada en Netsis.
	CreateDispatchLines(ctx context.Context, orderRef string, lines []Line) (string, error)
	// ConvertOrderToDispatch convierte el pedido que Netsis tiene almacenado
	// directamente en remisión. Netsis usa SUS cantidades, no las del almacén.
	ConvertOrderToDispatch(ctx context.Context, orderRef string) (string, error)
}

// RejectionError es un rechazo de negocio de Netsis (la petición llegó y fue
// procesada, pero el ERP la rechazó). Distinto de un error de transporte.
type RejectionError struct {
	Code    string
	Message string
}

func (e *RejectionError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("netsis rechazó la operación: %s", e.Message)
	}
	return fmt.Sprintf("netsis rechazó la operación [%s]: %s", e.Code, e.Message)
}

// Código de rechazo con el que Netsis indica que no reconoce la referencia
// del pedido para creación línea a línea. Dispara el fallback de conversión.
const rejectionOrderNotFound = "ORDER_NOT_FOUND"

// IsOrderUnknown indica si err es el rechazo "pedido no reconocido", el único
// caso en que se permite caer a la estrategia de conversión.
func IsOrderUnknown(err error) bool {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Code == rejectionOrderNotFound
	}
	return false
}

// IsRejection indica si err es un rechazo de negocio (vs. falla de transporte).
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}

// RESTClient implementa Client sobre la API REST de Netsis.
// Usa net/http de la stdlib; no requiere librerías de terceros.
type RESTClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRESTClient construye el cliente con un timeout de red generoso (60 s):
// la creación de remisiones en Netsis puede tardar varios segundos.
func NewRESTClient(baseURL, apiKey string) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

var _ Client = (*RESTClient)(nil)

type createDispatchRequest struct {
	OrderRef string `json:"order_ref"`
	Lines    []Line `json:"lines"`
}

type dispatchResponse struct {
	NoteID string `json:"note_id"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateDispatchLines envía POST /api/v2/dispatches con las líneas explícitas
// del almacén bajo una sola nota.
func (c *RESTClient) CreateDispatchLines(ctx context.Context, orderRef string, lines []Line) (string, error) {
	body := createDispatchRequest{OrderRef: orderRef, Lines: lines}
	return c.post(ctx, "/api/v2/dispatches", body)
}

// ConvertOrderToDispatch envía POST /api/v2/orders/{ref}/convert.
func (c *RESTClient) ConvertOrderToDispatch(ctx context.Context, orderRef string) (string, error) {
	return c.post(ctx, "/api/v2/orders/"+orderRef+"/convert", struct{}{})
}

func (c *RESTClient) post(ctx context.Context, path string, body any) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("serializar request netsis: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("construir request netsis: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llamada a netsis %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("leer respuesta netsis: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er errorResponse
		if jsonErr := json.Unmarshal(raw, &er); jsonErr == nil && (er.Code != "" || er.Message != "") {
			return "", &RejectionError{Code: er.Code, Message: er.Message}
		}
		// Cuerpo no estructurado: conservar lo que haya para diagnóstico.
		return "", &RejectionError{Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))}
	}

	var dr dispatchResponse
	if err := json.Unmarshal(raw, &dr); err != nil {
		return "", fmt.Errorf("decodificar respuesta netsis: %w", err)
	}
	if dr.NoteID == "" {
		return "", &RejectionError{Message: "netsis respondió sin note_id"}
	}
	return dr.NoteID, nil
}
