package category

import "strings"

// Bucket names for entries that match no category and for stray folders.
const (
	UncategorizedDir = "Uncategorized"
	QuarantineDir    = "Quarantine"
)

// Category is a named bucket of file extensions routed to a common
// destination directory. The directory name equals the category name.
type Category struct {
	Name       string
	extensions map[string]struct{}
}

// Contains reports whether the lowercased extension belongs to the category.
func (c Category) Contains(ext string) bool {
	_, ok := c.extensions[ext]
	return ok
}

// Extensions returns the category's extension list in undefined order.
func (c Category) Extensions() []string {
	out := make([]string, 0, len(c.extensions))
	for ext := range c.extensions {
		out = append(out, ext)
	}
	return out
}

func newCategory(name string, exts ...string) Category {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[ext] = struct{}{}
	}
	return Category{Name: name, extensions: set}
}

// Table holds the ordered category list plus the reserved directory names
// derived from it. Iteration order is fixed so classification stays
// deterministic; extension sets must be disjoint (first match wins).
type Table struct {
	categories []Category
	reserved   map[string]struct{}
	archiveExt map[string]struct{}
}

// Default returns the built-in category table.
func Default() *Table {
	return newTable(
		newCategory("Images", "jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp", "svg", "ico", "heic"),
		newCategory("Zip_Files", "zip", "rar", "7z", "tar", "gz", "bz2", "xz", "lzma", "cab", "iso"),
		newCategory("STEP_Files", "step", "stp", "stl", "obj", "3ds", "dae", "fbx"),
		newCategory("3MF_Files", "3mf"),
		newCategory("PDFs", "pdf"),
	)
}

func newTable(categories ...Category) *Table {
	reserved := map[string]struct{}{
		UncategorizedDir: {},
		QuarantineDir:    {},
	}
	for _, c := range categories {
		reserved[c.Name] = struct{}{}
	}
	t := &Table{categories: categories, reserved: reserved}
	for _, c := range categories {
		if c.Name == ArchiveCategory {
			t.archiveExt = c.extensions
		}
	}
	return t
}

// ArchiveCategory is the category whose directory the archive reconciler
// inspects for redundant archives.
const ArchiveCategory = "Zip_Files"

// Ext extracts a file name's extension: the text after the last '.',
// lowercased. A name without a '.' or ending in '.' has an empty extension.
func Ext(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// Classify maps a file name to its category. ok is false when no category
// claims the name's extension; such files belong in the uncategorized bucket.
func (t *Table) Classify(name string) (Category, bool) {
	ext := Ext(name)
	if ext == "" {
		return Category{}, false
	}
	for _, c := range t.categories {
		if c.Contains(ext) {
			return c, true
		}
	}
	return Category{}, false
}

// Categories returns the table's categories in classification order.
func (t *Table) Categories() []Category {
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// Directories returns every directory name the engine must create before the
// first pass: one per category plus the uncategorized and quarantine buckets.
func (t *Table) Directories() []string {
	out := make([]string, 0, len(t.categories)+2)
	for _, c := range t.categories {
		out = append(out, c.Name)
	}
	return append(out, UncategorizedDir, QuarantineDir)
}

// Reserved reports whether the directory name is a destination of sorting
// and therefore never a subject of classification or quarantine.
func (t *Table) Reserved(name string) bool {
	_, ok := t.reserved[name]
	return ok
}

// IsArchive reports whether the file name carries an archive extension.
func (t *Table) IsArchive(name string) bool {
	_, ok := t.archiveExt[Ext(name)]
	return ok
}

// ShouldQuarantine decides whether a top-level folder is moved into the
// quarantine bucket. Reserved directories and names on the ignore list stay
// where they are.
func (t *Table) ShouldQuarantine(name string, ignore []string) bool {
	if t.Reserved(name) {
		return false
	}
	for _, exempt := range ignore {
		if name == exempt {
			return false
		}
	}
	return true
}
