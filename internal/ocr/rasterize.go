package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// PopplerRasterizer renders PDF pages to PNG files with poppler's pdftoppm.
type PopplerRasterizer struct {
	binary string
	dpi    int
}

// NewPopplerRasterizer creates a rasterizer. An empty binary means
// "pdftoppm" on PATH.
func NewPopplerRasterizer(binary string, dpi int) *PopplerRasterizer {
	if binary == "" {
		binary = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 200
	}
	return &PopplerRasterizer{binary: binary, dpi: dpi}
}

// Rasterize writes one PNG per page into outDir and returns their paths in
// page order. A missing binary surfaces as exec.ErrNotFound.
func (r *PopplerRasterizer) Rasterize(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	bin, err := exec.LookPath(r.binary)
	if err != nil {
		return nil, err
	}
	prefix := filepath.Join(outDir, "page")
	cmd := exec.CommandContext(ctx, bin, "-r", strconv.Itoa(r.dpi), "-png", pdfPath, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	pages, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, err
	}
	sortPages(pages)
	return pages, nil
}

// sortPages orders "page-2.png" before "page-10.png". pdftoppm zero-pads to
// the width of the page count, but only within a single run.
func sortPages(pages []string) {
	num := func(p string) int {
		base := strings.TrimSuffix(filepath.Base(p), ".png")
		n, _ := strconv.Atoi(base[strings.LastIndex(base, "-")+1:])
		return n
	}
	sort.SliceStable(pages, func(i, j int) bool { return num(pages[i]) < num(pages[j]) })
}
