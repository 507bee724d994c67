package importer

import (
	"fmt"

	"github.com/jhoicas/catalogo-erp/internal/domain"
	"github.com/jhoicas/catalogo-erp/internal/domain/entity"
)

// ImageExtractor asocia las imágenes embebidas a los grupos de registros y las persiste.
type ImageExtractor struct {
	store ImageStore
}

// NewImageExtractor construye el extractor sobre un almacén de imágenes.
func NewImageExtractor(store ImageStore) *ImageExtractor {
	return &ImageExtractor{store: store}
}

// imageGroup registros que comparten GroupKey, en orden de aparición.
type imageGroup struct {
	key     string
	indexes []int
}

func groupRecords(records []entity.SheetRecord) []imageGroup {
	var groups []imageGroup
	pos := map[string]int{}
	for i, r := range records {
		g, ok := pos[r.GroupKey]
		if !ok {
			g = len(groups)
			pos[r.GroupKey] = g
			groups = append(groups, imageGroup{key: r.GroupKey})
		}
		groups[g].indexes = append(groups[g].indexes, i)
	}
	return groups
}

// Collect resuelve en memoria las imágenes de cada grupo: todos los registros del grupo
// comparten las primeras imágenes aportadas por alguno de ellos. Un grupo sin imágenes
// falla en su fila representativa. No hace nada si el formato no trae imágenes.
func (e *ImageExtractor) Collect(shape *SheetShape, records []entity.SheetRecord) error {
	if !shape.HasImages() {
		return nil
	}
	for _, g := range groupRecords(records) {
		var imgs []entity.RawImage
		for _, i := range g.indexes {
			if len(records[i].RawImages) > 0 {
				imgs = records[i].RawImages
				break
			}
		}
		if len(imgs) == 0 {
			rep := records[g.indexes[0]]
			return domain.NewRowError(domain.KindMissingRequiredField, rep.Row,
				shape.Label(FieldImages), "el producto %q no tiene imágenes", rep.Number)
		}
		for _, i := range g.indexes {
			records[i].RawImages = imgs
		}
	}
	return nil
}

// Persist escribe una vez las imágenes de cada grupo como {identidad}-{n}.png, con la
// identidad del registro representativo, y asigna las URLs a todos los registros del grupo.
func (e *ImageExtractor) Persist(shape *SheetShape, records []entity.SheetRecord) error {
	if !shape.HasImages() {
		return nil
	}
	for _, g := range groupRecords(records) {
		rep := records[g.indexes[0]]
		urls := make([]string, 0, len(rep.RawImages))
		for n, img := range rep.RawImages {
			name := fmt.Sprintf("%s-%d.png", rep.Barcode, n)
			url, err := e.store.Save(shape.ImageFolder, name, img.Data)
			if err != nil {
				return domain.StorageFailure("no se pudo guardar la imagen "+name, err)
			}
			urls = append(urls, url)
		}
		for _, i := range g.indexes {
			records[i].Images = urls
		}
	}
	return nil
}
