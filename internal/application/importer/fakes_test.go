package importer_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-erp/internal/application/importer"
	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
	"github.com/jhoicas/catalogo-erp/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Hoja en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memGrid struct {
	rows   int
	cells  map[[2]int]string
	images map[[2]int][]entity.RawImage
}

// newGrid coloca cada fila (columnas desde la A) a partir de firstRow.
func newGrid(firstRow int, rows ...[]string) *memGrid {
	g := &memGrid{cells: map[[2]int]string{}, images: map[[2]int][]entity.RawImage{}}
	for i, r := range rows {
		for c, v := range r {
			g.cells[[2]int{firstRow + i, c + 1}] = v
		}
	}
	g.rows = firstRow + len(rows) - 1
	return g
}

func (g *memGrid) withImage(row, col int, data string) *memGrid {
	k := [2]int{row, col}
	g.images[k] = append(g.images[k], entity.RawImage{Data: []byte(data), Extension: ".png"})
	return g
}

func (g *memGrid) Rows() int { return g.rows }

func (g *memGrid) Cell(row, col int) string { return g.cells[[2]int{row, col}] }

func (g *memGrid) Images(row, col int) ([]entity.RawImage, error) {
	return g.images[[2]int{row, col}], nil
}

// itemsRow arma una fila del formato items (columnas A..O).
func itemsRow(number, size, name, major, minor, color, barcode, qty, unit, cost, price string) []string {
	return []string{"", number, "", size, name, major, minor, color, barcode, qty, unit, cost, price, "", ""}
}

// orderRow arma una fila del formato orders (columnas A..K); la columna A es el consecutivo.
func orderRow(number, size, name, color, qty, price string) []string {
	return []string{"1", number, "", size, name, color, qty, "u", price, "", ""}
}

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con transacciones
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	categories []*entity.Category
	colors     []*entity.ColorCode
	items      []*entity.Item
	buckets    []*entity.LedgerBucket
	lines      []*entity.LedgerLine
	nextID     int64
}

func (s memState) clone() memState {
	c := s
	c.categories = append([]*entity.Category(nil), s.categories...)
	c.colors = append([]*entity.ColorCode(nil), s.colors...)
	c.items = append([]*entity.Item(nil), s.items...)
	c.buckets = append([]*entity.LedgerBucket(nil), s.buckets...)
	c.lines = append([]*entity.LedgerLine(nil), s.lines...)
	return c
}

type memStore struct {
	mu    sync.Mutex
	state memState

	insertBatchCalls int
	majorInserts     int
	minorInserts     int
	colorInserts     int

	// ganchos para simular fallos y carreras
	failInsertLines error
	beforeMajors    func(st *memState)
	beforeColors    func(st *memState)
}

func newStore() *memStore { return &memStore{state: memState{nextID: 100}} }

func (s *memStore) id(st *memState) int64 {
	st.nextID++
	return st.nextID
}

// writes cuenta las filas de catálogo y libro persistidas.
func (s *memStore) writes() int {
	st := s.state
	return len(st.categories) + len(st.colors) + len(st.items) + len(st.buckets) + len(st.lines)
}

func (s *memStore) seedCategory(name string, parent int64) int64 {
	id := s.id(&s.state)
	typ := entity.CategoryMajor
	if parent != 0 {
		typ = entity.CategoryMinor
	}
	s.state.categories = append(s.state.categories, &entity.Category{ID: id, Name: name, Type: typ, ParentID: parent})
	return id
}

func (s *memStore) seedColor(color string, value int) {
	s.state.colors = append(s.state.colors, &entity.ColorCode{ID: s.id(&s.state), Color: color, Value: value})
}

func (s *memStore) seedItem(it entity.Item) *entity.Item {
	it.ID = s.id(&s.state)
	s.state.items = append(s.state.items, &it)
	return &it
}

// ── repos atados a un estado (directo o transaccional) ────────────────────────

type categoryRepo struct {
	s  *memStore
	st *memState
}

func (r categoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	return append([]*entity.Category(nil), r.st.categories...), nil
}

func (r categoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	for _, c := range r.st.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r categoryRepo) exists(name string, parent int64) bool {
	for _, c := range r.st.categories {
		if c.Name == name && c.ParentID == parent {
			return true
		}
	}
	return false
}

func (r categoryRepo) InsertMajors(ctx context.Context, names []string) ([]*entity.Category, error) {
	r.s.majorInserts++
	if r.s.beforeMajors != nil {
		r.s.beforeMajors(r.st)
	}
	var out []*entity.Category
	for _, n := range names {
		if r.exists(n, 0) {
			continue
		}
		c := &entity.Category{ID: r.s.id(r.st), Name: n, Type: entity.CategoryMajor}
		r.st.categories = append(r.st.categories, c)
		out = append(out, c)
	}
	return out, nil
}

func (r categoryRepo) InsertMinors(ctx context.Context, rows []repository.MinorInsert) ([]*entity.Category, error) {
	r.s.minorInserts++
	var out []*entity.Category
	for _, m := range rows {
		if r.exists(m.Name, m.ParentID) {
			continue
		}
		c := &entity.Category{ID: r.s.id(r.st), Name: m.Name, Type: entity.CategoryMinor, ParentID: m.ParentID}
		r.st.categories = append(r.st.categories, c)
		out = append(out, c)
	}
	return out, nil
}

func (r categoryRepo) CountChildren(ctx context.Context, id int64) (int, error) {
	n := 0
	for _, c := range r.st.categories {
		if c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (r categoryRepo) Delete(ctx context.Context, id int64) error {
	for i, c := range r.st.categories {
		if c.ID == id {
			r.st.categories = append(r.st.categories[:i], r.st.categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type colorRepo struct {
	s  *memStore
	st *memState
}

func (r colorRepo) FindAll(ctx context.Context) ([]*entity.ColorCode, error) {
	return append([]*entity.ColorCode(nil), r.st.colors...), nil
}

func (r colorRepo) Insert(ctx context.Context, codes []*entity.ColorCode) error {
	r.s.colorInserts++
	if r.s.beforeColors != nil {
		r.s.beforeColors(r.st)
	}
	for _, c := range codes {
		dup := false
		for _, e := range r.st.colors {
			if e.Color == c.Color || e.Value == c.Value {
				dup = true
				break
			}
		}
		if !dup {
			cc := *c
			cc.ID = r.s.id(r.st)
			r.st.colors = append(r.st.colors, &cc)
		}
	}
	return nil
}

type itemRepo struct {
	s  *memStore
	st *memState
}

func (r itemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	for _, it := range r.st.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (r itemRepo) FindByBarcodes(ctx context.Context, barcodes []string) ([]*entity.Item, error) {
	want := map[string]bool{}
	for _, b := range barcodes {
		want[b] = true
	}
	var out []*entity.Item
	for _, it := range r.st.items {
		if want[it.Barcode] {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r itemRepo) InsertBatch(ctx context.Context, items []*entity.Item) error {
	r.s.insertBatchCalls++
	for _, it := range items {
		for _, e := range r.st.items {
			if e.Barcode == it.Barcode {
				return domain.ErrDuplicate
			}
		}
		it.ID = r.s.id(r.st)
		r.st.items = append(r.st.items, it)
	}
	return nil
}

func (r itemRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	n := 0
	for _, it := range r.st.items {
		if it.MajorID == categoryID || it.MinorID == categoryID {
			n++
		}
	}
	return n, nil
}

type ledgerRepo struct {
	s  *memStore
	st *memState
}

func (r ledgerRepo) InsertBucket(ctx context.Context, b *entity.LedgerBucket) error {
	b.ID = r.s.id(r.st)
	r.st.buckets = append(r.st.buckets, b)
	return nil
}

func (r ledgerRepo) InsertLines(ctx context.Context, lines []*entity.LedgerLine) error {
	if r.s.failInsertLines != nil {
		return r.s.failInsertLines
	}
	for _, l := range lines {
		l.ID = r.s.id(r.st)
		r.st.lines = append(r.st.lines, l)
	}
	return nil
}

func (r ledgerRepo) GetBucket(ctx context.Context, id int64) (*entity.LedgerBucket, error) {
	for _, b := range r.st.buckets {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r ledgerRepo) ListLines(ctx context.Context, bucketID int64) ([]*entity.LedgerLine, error) {
	var out []*entity.LedgerLine
	for _, l := range r.st.lines {
		if l.BucketID == bucketID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r ledgerRepo) Balance(ctx context.Context, itemID int64) (decimal.Decimal, error) {
	var sum int64
	for _, l := range r.st.lines {
		if l.ItemID == itemID {
			sum += l.Quantity
		}
	}
	return decimal.NewFromInt(sum), nil
}

// Repos fuera de transacción.
func (s *memStore) Categories() categoryRepo { return categoryRepo{s: s, st: &s.state} }

func (s *memStore) Colors() colorRepo { return colorRepo{s: s, st: &s.state} }

func (s *memStore) Items() itemRepo { return itemRepo{s: s, st: &s.state} }

func (s *memStore) Ledger() ledgerRepo { return ledgerRepo{s: s, st: &s.state} }

// Run aplica fn sobre una copia del estado y la confirma sólo si fn no falla.
func (s *memStore) Run(ctx context.Context, fn func(repository.ItemRepository, repository.LedgerRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.state.clone()
	if err := fn(itemRepo{s: s, st: &tx}, ledgerRepo{s: s, st: &tx}); err != nil {
		return err
	}
	s.state = tx
	return nil
}

var _ importer.TxRunner = (*memStore)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Imágenes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memImages struct {
	files map[string][]byte
	fail  bool
}

func newImages() *memImages { return &memImages{files: map[string][]byte{}} }

func (m *memImages) Save(folder, name string, data []byte) (string, error) {
	if m.fail {
		return "", errors.New("disco lleno")
	}
	m.files[folder+"/"+name] = data
	return fmt.Sprintf("http://img.test/%s/%s", folder, name), nil
}

func (m *memImages) names() []string {
	out := make([]string, 0, len(m.files))
	for k := range m.files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del pipeline
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	store    *memStore
	images   *memImages
	pipeline *importer.Pipeline
}

func newHarness(batchSize int) *harness {
	st := newStore()
	imgs := newImages()
	p := importer.NewPipeline(
		importer.NewIdentityResolver(st.Colors(), st.Items()),
		importer.NewCatalogReconciler(st.Categories()),
		importer.NewImageExtractor(imgs),
		importer.NewLedgerPoster(st, batchSize),
		nil,
	)
	return &harness{store: st, images: imgs, pipeline: p}
}
