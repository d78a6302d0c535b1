package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
)

var errGatewayDown = errors.New("gateway unavailable")

type gatewayCall struct {
	Op    string
	Table string
	Row   models.Row
	Match models.Match
}

// fakeGateway is an in-memory table store that decodes rows through JSON the
// same way API responses are shaped.
type fakeGateway struct {
	mu     sync.Mutex
	tables map[string][]models.Row
	calls  []gatewayCall
	seq    int
	clock  time.Time

	selectErr map[string]error
	insertErr map[string]error
	updateErr map[string]error
	deleteErr map[string]error
	// updateErrFor fails updates whose patch contains the given column.
	updateErrFor map[string]error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		tables:       map[string][]models.Row{},
		clock:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		selectErr:    map[string]error{},
		insertErr:    map[string]error{},
		updateErr:    map[string]error{},
		deleteErr:    map[string]error{},
		updateErrFor: map[string]error{},
	}
}

func (g *fakeGateway) seed(table string, rows ...models.Row) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, row := range rows {
		g.tables[table] = append(g.tables[table], g.stamp(row))
	}
}

func (g *fakeGateway) stamp(row models.Row) models.Row {
	out := models.Row{}
	for k, v := range row {
		out[k] = v
	}
	if _, ok := out["id"]; !ok {
		g.seq++
		out["id"] = fmt.Sprintf("row-%d", g.seq)
	}
	if _, ok := out["created_at"]; !ok {
		g.clock = g.clock.Add(time.Minute)
		out["created_at"] = g.clock
	}
	return out
}

func (g *fakeGateway) rows(table string) []models.Row {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.Row, len(g.tables[table]))
	copy(out, g.tables[table])
	return out
}

func (g *fakeGateway) callsFor(op string) []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []gatewayCall
	for _, call := range g.calls {
		if call.Op == op {
			out = append(out, call)
		}
	}
	return out
}

func (g *fakeGateway) Select(_ context.Context, table string, q models.Query, dest interface{}) error {
	g.mu.Lock()
	g.calls = append(g.calls, gatewayCall{Op: "select", Table: table, Match: q.Match})
	if err := g.selectErr[table]; err != nil {
		g.mu.Unlock()
		return err
	}
	var matched []models.Row
	for _, row := range g.tables[table] {
		if matches(row, q.Match) {
			matched = append(matched, row)
		}
	}
	g.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		for _, order := range q.Order {
			c := compareValues(matched[i][order.Column], matched[j][order.Column])
			if c == 0 {
				continue
			}
			if order.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	if matched == nil {
		matched = []models.Row{}
	}
	payload, err := json.Marshal(matched)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, dest)
}

func (g *fakeGateway) Insert(_ context.Context, table string, rows ...models.Row) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, row := range rows {
		g.calls = append(g.calls, gatewayCall{Op: "insert", Table: table, Row: row})
	}
	if err := g.insertErr[table]; err != nil {
		return err
	}
	for _, row := range rows {
		g.tables[table] = append(g.tables[table], g.stamp(row))
	}
	return nil
}

func (g *fakeGateway) Update(_ context.Context, table string, patch models.Row, match models.Match) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, gatewayCall{Op: "update", Table: table, Row: patch, Match: match})
	if err := g.updateErr[table]; err != nil {
		return err
	}
	for column := range patch {
		if err := g.updateErrFor[column]; err != nil {
			return err
		}
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

func (g *fakeGateway) Delete(_ context.Context, table string, match models.Match) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, gatewayCall{Op: "delete", Table: table, Match: match})
	if err := g.deleteErr[table]; err != nil {
		return err
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

func matches(row models.Row, match models.Match) bool {
	for k, v := range match {
		if fmt.Sprint(row[k]) != fmt.Sprint(v) {
			return false
		}
	}
	return true
}

func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case int:
		bv, _ := b.(int)
		return av - bv
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}
