package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-erp/internal/application/importer"
	"github.com/jhoicas/catalogo-erp/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Herencia de celdas combinadas
// ──────────────────────────────────────────────────────────────────────────────

// Caso: la fila 2 no trae número ni nombre; los hereda de la fila 1 y conserva
// su propio color y cantidad.
func TestParse_HeredaNumeroYNombre(t *testing.T) {
	grid := newGrid(7,
		itemsRow("A1023", "M", "Camisa", "Ropa", "Camisas", "rojo", "", "12.5", "u", "2.00", "3.20"),
		itemsRow("", "", "", "Ropa", "Camisas", "azul", "", "3", "u", "2.00", "3.20"),
		itemsRow("B7", "L", "Pantalón", "Ropa", "Pantalones", "negro", "", "1", "u", "5", "9.99"),
	)

	recs, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "A1023", recs[1].Number)
	assert.Equal(t, "Camisa", recs[1].Name)
	assert.Equal(t, "M", recs[1].Size)
	assert.Equal(t, "AZUL", recs[1].Color)
	assert.Equal(t, int64(30), recs[1].Quantity)
	assert.Equal(t, 8, recs[1].Row)
	assert.Equal(t, "A1023", recs[1].GroupKey)

	// la fila 3 trae sus propios valores
	assert.Equal(t, "B7", recs[2].Number)
	assert.Equal(t, "Pantalón", recs[2].Name)
}

// Para toda fila con la celda vacía, el valor es el de la fila previa no vacía más cercana.
func TestParse_HerenciaEncadenada(t *testing.T) {
	grid := newGrid(4,
		orderRow("N1", "M", "Taza", "rojo", "1", "2"),
		orderRow("", "M", "Taza", "azul", "1", "2"),
		orderRow("", "L", "Taza", "verde", "1", "2"),
		orderRow("N2", "M", "Vaso", "gris", "1", "2"),
	)
	recs, err := importer.NewParser(importer.OrdersShape()).Parse(grid)
	require.NoError(t, err)
	require.Len(t, recs, 4)

	for _, r := range recs[:3] {
		assert.Equal(t, "N1", r.Number)
		assert.Equal(t, "N1", r.GroupKey)
	}
	assert.Equal(t, "N2", recs[3].Number)
	assert.Equal(t, "Vaso", recs[3].Name)
	assert.Equal(t, "L", recs[2].Size)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fin de datos
// ──────────────────────────────────────────────────────────────────────────────

// N filas válidas seguidas de una fila con discriminadores vacíos producen exactamente N registros.
func TestParse_FilaVaciaTerminaLosDatos(t *testing.T) {
	grid := newGrid(7,
		itemsRow("A1", "", "Camisa", "Ropa", "Camisas", "rojo", "", "1", "u", "1", "3"),
		itemsRow("B1", "", "Gorra", "Ropa", "Gorras", "azul", "", "2", "u", "1", "3"),
		[]string{},
		itemsRow("C1", "", "Bolso", "Ropa", "Bolsos", "gris", "", "3", "u", "1", "3"),
	)
	recs, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

// La detección mira sólo las celdas propias: un color propio basta para seguir aunque
// número y nombre se hereden, y la fila se valida completa.
func TestParse_FinDeDatosAntesDeHeredar(t *testing.T) {
	grid := newGrid(7,
		itemsRow("A1", "", "Camisa", "Ropa", "Camisas", "rojo", "", "1", "u", "1", "3"),
		itemsRow("", "", "", "Ropa", "Camisas", "azul", "", "1", "u", "", ""),
	)
	_, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
	ie, ok := domain.AsImportError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindMissingRequiredField, ie.Kind)
	assert.Equal(t, 8, ie.Row)
	assert.Equal(t, "Precio (M)", ie.Column)
}

// En un pedido basta con que falte la cantidad o el precio para terminar.
func TestParse_Pedido_CantidadOPrecioCeroTermina(t *testing.T) {
	cases := []struct {
		name  string
		qty   string
		price string
	}{
		{"precio en cero", "2", "0"},
		{"precio vacío", "2", ""},
		{"cantidad vacía", "", "5"},
		{"cantidad que redondea a cero", "0.04", "5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid := newGrid(4,
				orderRow("P1", "M", "Taza", "rojo", "1", "5"),
				orderRow("", "M", "Taza", "azul", tc.qty, tc.price),
				orderRow("P2", "L", "Vaso", "gris", "1", "5"),
			)
			recs, err := importer.NewParser(importer.OrdersShape()).Parse(grid)
			require.NoError(t, err)
			assert.Len(t, recs, 1)
		})
	}
}

func TestParse_Pedido_CategoriasPorDefecto(t *testing.T) {
	grid := newGrid(4, orderRow("P1", "M", "Taza", "rojo", "1.5", "12.90"))
	recs, err := importer.NewParser(importer.OrdersShape()).Parse(grid)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, 4, r.Row)
	assert.Equal(t, int64(15), r.Quantity)
	assert.Equal(t, int64(1290), r.Price)
	assert.Equal(t, "Pedidos", r.Major)
	assert.Equal(t, "General", r.Minor)
	assert.Empty(t, r.Barcode, "se deriva más adelante")
}

func TestParse_HojaSinFilas(t *testing.T) {
	grid := newGrid(4)
	recs, err := importer.NewParser(importer.OrdersShape()).Parse(grid)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión numérica
// ──────────────────────────────────────────────────────────────────────────────

// "12.5" con escala ×10 → 125; "3.20" con escala ×100 → 320.
func TestParse_Escalas(t *testing.T) {
	grid := newGrid(7,
		itemsRow("A1", "", "Camisa", "Ropa", "Camisas", "rojo", "", "12.5", "u", "$1,234.56", "3.20"),
	)
	recs, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, int64(125), recs[0].Quantity)
	assert.Equal(t, int64(320), recs[0].Price)
	assert.Equal(t, int64(123456), recs[0].Cost)
}

// Excel guarda 0.29 como "0.28999999999999998": el valor escalado se redondea, no se trunca.
func TestParse_RedondeaArtefactosDeComaFlotante(t *testing.T) {
	grid := newGrid(7,
		itemsRow("A1", "", "Camisa", "Ropa", "Camisas", "rojo", "", "0.69999999999999996", "u",
			"1.1499999999999999", "0.28999999999999998"),
	)
	recs, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, int64(7), recs[0].Quantity)
	assert.Equal(t, int64(115), recs[0].Cost)
	assert.Equal(t, int64(29), recs[0].Price)

	grid = newGrid(4, orderRow("P1", "M", "Taza", "rojo", "2.2999999999999998", "0.28999999999999998"))
	recs, err = importer.NewParser(importer.OrdersShape()).Parse(grid)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(23), recs[0].Quantity)
	assert.Equal(t, int64(29), recs[0].Price)
}

// Texto no numérico vale cero salvo en la cantidad.
func TestParse_TextoNoNumerico(t *testing.T) {
	grid := newGrid(7,
		itemsRow("A1", "", "Camisa", "Ropa", "Camisas", "rojo", "", "2", "u", "n/d", "3.20"),
	)
	recs, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
	require.NoError(t, err)
	assert.Equal(t, int64(0), recs[0].Cost)
}

func TestParse_CantidadCeroOInvalida(t *testing.T) {
	for _, qty := range []string{"0", "abc", "0.04"} {
		grid := newGrid(7,
			itemsRow("A1", "", "Camisa", "Ropa", "Camisas", "rojo", "", qty, "u", "1", "3.20"),
		)
		_, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
		ie, ok := domain.AsImportError(err)
		require.True(t, ok, "cantidad %q", qty)
		assert.Equal(t, domain.KindInvalidStructure, ie.Kind)
		assert.Equal(t, 7, ie.Row)
		assert.Equal(t, "Cantidad (J)", ie.Column)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Obligatorios
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_ObligatorioVacio(t *testing.T) {
	grid := newGrid(7,
		itemsRow("A1", "", "Camisa", "Ropa", "Camisas", "rojo", "", "1", "u", "1", "3.20"),
		itemsRow("", "", "", "Ropa", "Camisas", "azul", "", "1", "", "1", "3.20"),
	)
	recs, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
	assert.Nil(t, recs, "sin registros parciales")

	ie, ok := domain.AsImportError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindMissingRequiredField, ie.Kind)
	assert.Equal(t, 8, ie.Row)
	assert.Equal(t, "Unidad (K)", ie.Column)
	assert.Equal(t, "fila 8, columna Unidad (K): campo obligatorio vacío", ie.Error())
}

// La primera fila no tiene de quién heredar.
func TestParse_PrimeraFilaSinNumero(t *testing.T) {
	grid := newGrid(7,
		itemsRow("", "", "Camisa", "Ropa", "Camisas", "rojo", "", "1", "u", "1", "3.20"),
	)
	_, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
	ie, ok := domain.AsImportError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindMissingRequiredField, ie.Kind)
	assert.Equal(t, "Número (B)", ie.Column)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas por formato
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_Embryo_NumeroComoIdentidad(t *testing.T) {
	grid := newGrid(2,
		[]string{"", "E-01", "Base", "blanco", "u", "4"},
	)
	recs, err := importer.NewParser(importer.EmbryoShape()).Parse(grid)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "E-01", r.Barcode)
	assert.False(t, r.BarcodeDerived)
	assert.Equal(t, int64(4), r.Quantity)
	assert.Equal(t, "Semielaborados", r.Major)
	assert.Equal(t, "General", r.Minor)
	assert.Equal(t, "BLANCO", r.Color)
}

// Dentro de un grupo gana el par de categorías más frecuente.
func TestParse_ArmonizaCategorias(t *testing.T) {
	grid := newGrid(7,
		itemsRow("A1", "", "Camisa", "Ropa", "Camisas", "rojo", "", "1", "u", "1", "3"),
		itemsRow("", "", "", "Ropa", "Camisas", "azul", "", "1", "u", "1", "3"),
		itemsRow("", "", "", "Ropa", "Blusas", "verde", "", "1", "u", "1", "3"),
		itemsRow("", "", "", "", "", "negro", "", "1", "u", "1", "3"),
		itemsRow("B1", "", "Gorra", "", "", "gris", "", "1", "u", "1", "3"),
	)
	recs, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
	require.NoError(t, err)
	require.Len(t, recs, 5)

	for _, r := range recs[:4] {
		assert.Equal(t, "Ropa", r.Major)
		assert.Equal(t, "Camisas", r.Minor)
	}
	// grupo sin categorías: queda en blanco y se rechaza más adelante
	assert.Empty(t, recs[4].Major)
}

func TestParse_CargaImagenesDeLaFila(t *testing.T) {
	grid := newGrid(7,
		itemsRow("A1", "", "Camisa", "Ropa", "Camisas", "rojo", "", "1", "u", "1", "3"),
	).withImage(7, 3, "png-1").withImage(7, 3, "png-2")

	recs, err := importer.NewParser(importer.ItemsShape()).Parse(grid)
	require.NoError(t, err)
	require.Len(t, recs[0].RawImages, 2)
	assert.Equal(t, []byte("png-1"), recs[0].RawImages[0].Data)
}
