package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rainbow-kids-api/internal/middleware"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func decodeEnvelope(rec *httptest.ResponseRecorder) responseEnvelope {
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	return envelope
}

func jsonDecode(rec *httptest.ResponseRecorder, dest interface{}) error {
	return json.Unmarshal(rec.Body.Bytes(), dest)
}

var errGatewayDown = errors.New("gateway unavailable")

// tableGateway keeps rows per table and hands them back through JSON, the
// same way the SQL gateway scans into tagged structs.
type tableGateway struct {
	mu        sync.Mutex
	tables    map[string][]models.Row
	selectErr error
	writeErr  error
	calls     []string
	nextID    int
}

func newTableGateway() *tableGateway {
	return &tableGateway{tables: map[string][]models.Row{}}
}

func (g *tableGateway) seed(table string, rows ...models.Row) {
	g.tables[table] = append(g.tables[table], rows...)
}

func (g *tableGateway) Select(_ context.Context, table string, query models.Query, dest interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "select:"+table)
	if g.selectErr != nil {
		return g.selectErr
	}
	var rows []models.Row
	for _, row := range g.tables[table] {
		if matches(row, query.Match) {
			rows = append(rows, row)
		}
	}
	if len(query.Order) > 0 {
		col := query.Order[0].Column
		sort.SliceStable(rows, func(i, j int) bool {
			return fmt.Sprint(rows[i][col]) < fmt.Sprint(rows[j][col])
		})
	}
	if rows == nil {
		rows = []models.Row{}
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (g *tableGateway) Insert(_ context.Context, table string, rows ...models.Row) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "insert:"+table)
	if g.writeErr != nil {
		return g.writeErr
	}
	for _, row := range rows {
		g.nextID++
		copied := models.Row{"id": fmt.Sprintf("new-%d", g.nextID)}
		for k, v := range row {
			copied[k] = v
		}
		g.tables[table] = append(g.tables[table], copied)
	}
	return nil
}

func (g *tableGateway) Update(_ context.Context, table string, patch models.Row, match models.Match) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "update:"+table)
	if g.writeErr != nil {
		return g.writeErr
	}
	for _, row := range g.tables[table] {
		if matches(row, match) {
			for k, v := range patch {
				row[k] = v
			}
		}
	}
	return nil
}

func (g *tableGateway) Delete(_ context.Context, table string, match models.Match) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "delete:"+table)
	if g.writeErr != nil {
		return g.writeErr
	}
	kept := g.tables[table][:0]
	for _, row := range g.tables[table] {
		if !matches(row, match) {
			kept = append(kept, row)
		}
	}
	g.tables[table] = kept
	return nil
}

func (g *tableGateway) count(call string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c == call {
			n++
		}
	}
	return n
}

func matches(row models.Row, match models.Match) bool {
	for k, v := range match {
		if fmt.Sprint(row[k]) != fmt.Sprint(v) {
			return false
		}
	}
	return true
}

type noopAuthority struct{}

func (noopAuthority) GetSession(context.Context, string) (*models.AuthSession, error) {
	return nil, nil
}
func (noopAuthority) SignOut(context.Context, string) error { return nil }

// endedShell attaches a shell whose session has already ended.
func endedShell(c *gin.Context) {
	gate := service.NewAdminGate(noopAuthority{}, newTableGateway(), nil, "/admin/login", nil, nil)
	decision := service.GateDecision{State: service.GateRedirected, Redirect: "/admin/login", Reason: service.ReasonSessionGone}
	c.Set(middleware.ContextShellKey, gate.Shell("token", decision))
}
