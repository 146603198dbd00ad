package store

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one stored JSON object.
type Record = map[string]any

// Query selects a page of a collection.
//
// Filters are matched against record fields; "search" is a case-insensitive
// substring match over the collection's text fields, and a dotted key such as
// "user.name" reaches into nested objects. Page is 1-based.
type Query struct {
	Filters   map[string]string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Paging limits.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is the result of List.
type Page struct {
	Items []Record
	Page  int
	Limit int
	Total int
	Pages int
}

// Stats feeds the dashboard.
type Stats struct {
	TotalProducts  int     `json:"totalProducts"`
	TotalOrders    int     `json:"totalOrders"`
	TotalCustomers int     `json:"totalCustomers"`
	PendingOrders  int     `json:"pendingOrders"`
	Revenue        float64 `json:"revenue"`
	LowStock       int     `json:"lowStock"`
}

// Memory is a concurrency-safe in-memory store.
type Memory struct {
	mu       sync.RWMutex
	data     map[string]map[string]Record
	accounts map[string]Account
	orderSeq int
	now      func() time.Time
}

func NewMemory() *Memory {
	m := &Memory{
		data:     make(map[string]map[string]Record, len(Collections)),
		accounts: map[string]Account{},
		now:      time.Now,
	}
	for _, c := range Collections {
		m.data[c] = map[string]Record{}
	}
	return m
}

func (m *Memory) collection(name string) (map[string]Record, rules, error) {
	c, ok := m.data[name]
	if !ok {
		return nil, rules{}, fmt.Errorf("%s: %w", name, ErrUnknownCollection)
	}
	return c, collectionRules[name], nil
}

func (m *Memory) stamp() string {
	return m.now().UTC().Format(time.RFC3339Nano)
}

// List returns one page of the collection.
func (m *Memory) List(ctx context.Context, collection string, q Query) (Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, r, err := m.collection(collection)
	if err != nil {
		return Page{}, err
	}

	var matched []Record
	for _, rec := range c {
		if matches(rec, q.Filters, r.search) {
			matched = append(matched, rec)
		}
	}
	sortRecords(matched, q.SortBy, q.SortOrder)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	page := max(q.Page, 1)

	p := Page{Page: page, Limit: limit, Total: len(matched)}
	p.Pages = int(math.Ceil(float64(p.Total) / float64(limit)))

	from := min((page-1)*limit, len(matched))
	to := min(from+limit, len(matched))
	p.Items = make([]Record, 0, to-from)
	for _, rec := range matched[from:to] {
		p.Items = append(p.Items, cloneRecord(rec))
	}
	return p, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, _, err := m.collection(collection)
	if err != nil {
		return nil, err
	}
	rec, ok := c[id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", collection, id, ErrNotFound)
	}
	return cloneRecord(rec), nil
}

// Create validates rec, fills defaults and stores it under a fresh id.
func (m *Memory) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, r, err := m.collection(collection)
	if err != nil {
		return nil, err
	}

	out := cloneRecord(rec)
	for k, v := range r.defaults {
		if _, ok := out[k]; !ok {
			out[k] = cloneValue(v)
		}
	}
	if err := r.check(out, false); err != nil {
		return nil, err
	}
	m.derive(collection, out)

	out["_id"] = uuid.NewString()
	ts := m.stamp()
	out["createdAt"], out["updatedAt"] = ts, ts
	c[out["_id"].(string)] = out
	return cloneRecord(out), nil
}

// Update merges patch into the stored record. Top-level members of patch
// replace the stored ones; "_id" and "createdAt" cannot change.
func (m *Memory) Update(ctx context.Context, collection, id string, patch Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, r, err := m.collection(collection)
	if err != nil {
		return nil, err
	}
	cur, ok := c[id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", collection, id, ErrNotFound)
	}

	next := cloneRecord(cur)
	for k, v := range patch {
		if k == "_id" || k == "createdAt" || k == "updatedAt" {
			continue
		}
		next[k] = cloneValue(v)
	}
	if err := r.check(next, false); err != nil {
		return nil, err
	}
	m.derive(collection, next)

	next["updatedAt"] = m.stamp()
	c[id] = next
	return cloneRecord(next), nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, _, err := m.collection(collection)
	if err != nil {
		return err
	}
	if _, ok := c[id]; !ok {
		return fmt.Errorf("%s %s: %w", collection, id, ErrNotFound)
	}
	delete(c, id)
	return nil
}

// Stats aggregates the dashboard counters. Revenue sums paid orders.
func (m *Memory) Stats(ctx context.Context) Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := Stats{
		TotalProducts:  len(m.data[Products]),
		TotalOrders:    len(m.data[Orders]),
		TotalCustomers: len(m.data[Customers]),
	}
	for _, o := range m.data[Orders] {
		if o["status"] == "pending" {
			st.PendingOrders++
		}
		if o["paymentStatus"] == "paid" {
			n, _ := o["totalAmount"].(float64)
			st.Revenue += n
		}
	}
	for _, p := range m.data[Products] {
		if n, _ := p["stock"].(float64); n < LowStockThreshold {
			st.LowStock++
		}
	}
	return st
}

// derive fills members computed from others. Caller holds the write lock.
func (m *Memory) derive(collection string, rec Record) {
	switch collection {
	case Categories:
		if blank(rec["slug"]) {
			name, _ := rec["name"].(string)
			rec["slug"] = slugify(name)
		}
	case Orders:
		if blank(rec["orderNumber"]) {
			m.orderSeq++
			rec["orderNumber"] = fmt.Sprintf("ORD-%06d", m.orderSeq)
		}
		if _, ok := rec["totalAmount"]; !ok {
			rec["totalAmount"] = orderTotal(rec["items"])
		}
	}
}

func orderTotal(items any) float64 {
	list, _ := items.([]any)
	var total float64
	for _, it := range list {
		obj, _ := it.(map[string]any)
		price, _ := obj["price"].(float64)
		qty, _ := obj["quantity"].(float64)
		total += price * qty
	}
	return total
}

func matches(rec Record, filters map[string]string, searchFields []string) bool {
	for key, want := range filters {
		if want == "" {
			continue
		}
		if key == "search" {
			if !searchMatches(rec, want, searchFields) {
				return false
			}
			continue
		}
		v, ok := lookup(rec, key)
		if !ok || !strings.EqualFold(format(v), want) {
			return false
		}
	}
	return true
}

func searchMatches(rec Record, needle string, fields []string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if v, ok := lookup(rec, f); ok && strings.Contains(strings.ToLower(format(v)), needle) {
			return true
		}
	}
	return false
}

// lookup resolves a dotted path such as "weight.unit".
func lookup(rec Record, path string) (any, bool) {
	var cur any = rec
	for part := range strings.SplitSeq(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// sortRecords orders by field, numbers numerically and everything else as
// text. Ties and records without the field fall back to "_id" so pages are
// stable.
func sortRecords(recs []Record, field, order string) {
	desc := strings.EqualFold(order, "desc")
	slices.SortStableFunc(recs, func(a, b Record) int {
		c := 0
		if field != "" {
			av, _ := lookup(a, field)
			bv, _ := lookup(b, field)
			c = compareValues(av, bv)
			if desc {
				c = -c
			}
		}
		if c == 0 {
			c = cmp.Compare(format(a["_id"]), format(b["_id"]))
		}
		return c
	})
}

func compareValues(a, b any) int {
	an, aNum := a.(float64)
	bn, bNum := b.(float64)
	if aNum && bNum {
		return cmp.Compare(an, bn)
	}
	return cmp.Compare(strings.ToLower(format(a)), strings.ToLower(format(b)))
}

func cloneRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneRecord(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}
