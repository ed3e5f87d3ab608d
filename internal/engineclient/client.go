package engineclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shaiso/Kadr/internal/domain"
)

// defaultTimeout — таймаут выполнения пайплайна.
// Транскодирование длинного видео — минуты, не секунды.
const defaultTimeout = 30 * time.Minute

// NodeRef — узел в сериализованном запросе движку.
type NodeRef struct {
	ID   string          `json:"id"`
	Kind domain.NodeKind `json:"kind"`
	Data domain.NodeData `json:"data"`
}

// ConnectionRef — ребро в сериализованном запросе движку.
// Теги портов по умолчанию — video-output/video-input:
// движок требует handle на каждом ребре, редактор — нет.
type ConnectionRef struct {
	ID         string `json:"id"`
	From       string `json:"from"`
	To         string `json:"to"`
	FromHandle string `json:"fromHandle"`
	ToHandle   string `json:"toHandle"`
}

// Request — сериализованный пайплайн для движка.
type Request struct {
	Nodes       []NodeRef       `json:"nodes"`
	Connections []ConnectionRef `json:"connections"`
}

// BuildRequest сериализует граф в формат движка.
func BuildRequest(pipeline domain.Pipeline) Request {
	req := Request{
		Nodes:       make([]NodeRef, 0, len(pipeline.Nodes)),
		Connections: make([]ConnectionRef, 0, len(pipeline.Edges)),
	}

	for _, n := range pipeline.Nodes {
		req.Nodes = append(req.Nodes, NodeRef{
			ID:   n.ID,
			Kind: n.Kind,
			Data: n.Data,
		})
	}

	for _, e := range pipeline.Edges {
		fromHandle := string(e.SourceHandle)
		if fromHandle == "" {
			fromHandle = string(domain.HandleVideoOutput)
		}
		toHandle := string(e.TargetHandle)
		if toHandle == "" {
			toHandle = string(domain.HandleVideoInput)
		}

		id := e.ID
		if id == "" {
			id = domain.NewEdgeID()
		}

		req.Connections = append(req.Connections, ConnectionRef{
			ID:         id,
			From:       e.Source,
			To:         e.Target,
			FromHandle: fromHandle,
			ToHandle:   toHandle,
		})
	}

	return req
}

// Client — HTTP-клиент движка выполнения.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент движка.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// DefaultURL возвращает адрес движка из окружения
// или значение по умолчанию для локальной разработки.
func DefaultURL() string {
	if v := os.Getenv("ENGINE_URL"); v != "" {
		return v
	}
	return "http://localhost:9090"
}

// ExecutePipeline отправляет пайплайн движку и ждёт результата.
//
// Ошибка возвращается только для транспортных проблем; логический
// провал выполнения приходит как Response с success=false.
func (c *Client) ExecutePipeline(ctx context.Context, req Request) (*domain.ExecutionResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrEngineResponse,
			resp.StatusCode, truncate(string(respBody), 200))
	}

	var result domain.ExecutionResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrEngineResponse, err)
	}

	return &result, nil
}

// truncate обрезает строку для сообщений об ошибках.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
