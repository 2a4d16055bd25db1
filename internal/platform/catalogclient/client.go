package catalogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vet-procedures/internal/domain/procedures"
	"vet-procedures/internal/domain/reports"
	"vet-procedures/internal/platform/httpclient"
)

// Client habla con /api/procedimentos y /api/relatorios de un servidor vetproc.
// La API exige Origin permitido, así que se manda en cada request.
type Client struct {
	http *httpclient.Client
}

func New(baseURL, origin string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if origin = strings.TrimSpace(origin); origin == "" {
		origin = hc.BaseURL
	}
	hc.Headers["Origin"] = origin
	return &Client{http: hc}, nil
}

type procedureWire struct {
	Code      int    `json:"cod"`
	Name      string `json:"nome"`
	LineGroup string `json:"grupo_linha"`
	Plan      string `json:"plano"`
	SubGroup  string `json:"sub_grupo"`
	Price     string `json:"preco_tabela"`
}

func (p procedureWire) toDomain() procedures.Procedure {
	return procedures.Procedure{
		Code:      p.Code,
		Name:      p.Name,
		LineGroup: p.LineGroup,
		Plan:      p.Plan,
		SubGroup:  p.SubGroup,
		Price:     p.Price,
	}
}

type envelope[T any] struct {
	Success  bool   `json:"success"`
	Data     T      `json:"data"`
	Count    *int   `json:"count"`
	Cached   *bool  `json:"cached"`
	CacheAge *int   `json:"cacheAge"`
	Warning  string `json:"warning"`
	Error    string `json:"error"`
}

// CatalogPage es el catálogo completo tal como lo devolvió el servidor.
type CatalogPage struct {
	Items    []procedures.Procedure
	Cached   bool
	Stale    bool
	CacheAge time.Duration
	Warning  string
	XCache   string
}

func (c *Client) Catalog(ctx context.Context) (CatalogPage, error) {
	resp, err := c.http.Do(ctx, http.MethodGet, "/api/procedimentos", nil, nil)
	if err != nil {
		return CatalogPage{}, err
	}

	var env envelope[[]procedureWire]
	if err := decode(resp.Body, &env); err != nil {
		return CatalogPage{}, err
	}

	page := CatalogPage{
		Items:   toDomain(env.Data),
		Warning: env.Warning,
		Stale:   env.Warning != "",
		XCache:  resp.Header.Get("X-Cache"),
	}
	if env.Cached != nil {
		page.Cached = *env.Cached
	}
	if env.CacheAge != nil {
		page.CacheAge = time.Duration(*env.CacheAge) * time.Second
	}
	return page, nil
}

func (c *Client) Plans(ctx context.Context) ([]string, error) {
	var env envelope[[]string]
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/procedimentos/filtro", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) SubGroups(ctx context.Context, plan string) ([]string, error) {
	var env envelope[[]string]
	q := url.Values{"plano": {plan}}
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/procedimentos/filtro", q, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) Procedures(ctx context.Context, plan, subGroup string) ([]procedures.Procedure, error) {
	var env envelope[[]procedureWire]
	q := url.Values{"plano": {plan}, "sub_grupo": {subGroup}}
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/procedimentos/filtro", q, nil, &env); err != nil {
		return nil, err
	}
	return toDomain(env.Data), nil
}

// ReportItem es un código con su cantidad, como lo recibe POST /api/relatorios.
type ReportItem = reports.ItemRequest

type reportRequest struct {
	Patient reports.PatientInfo `json:"patient"`
	Items   []ReportItem        `json:"items"`
}

// Report pide el PDF y lo copia a w. Devuelve el nombre de archivo sugerido por el servidor.
func (c *Client) Report(ctx context.Context, patient reports.PatientInfo, items []ReportItem, w io.Writer) (string, error) {
	resp, err := c.http.Do(ctx, http.MethodPost, "/api/relatorios", nil, reportRequest{Patient: patient, Items: items})
	if err != nil {
		return "", err
	}
	if _, err := w.Write(resp.Body); err != nil {
		return "", err
	}
	return fileNameFrom(resp.Header.Get("Content-Disposition")), nil
}

func fileNameFrom(disposition string) string {
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func decode(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("catalogclient: decode: %w", err)
	}
	return nil
}

func toDomain(in []procedureWire) []procedures.Procedure {
	out := make([]procedures.Procedure, 0, len(in))
	for _, p := range in {
		out = append(out, p.toDomain())
	}
	return out
}
