package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/forgecad/scadview/internal/config"
	"github.com/forgecad/scadview/pkg/ast"
	"github.com/forgecad/scadview/pkg/convert"
	"github.com/forgecad/scadview/pkg/kernel"
	"github.com/forgecad/scadview/pkg/kernel/sdfx"
)

// colorPalette assigns distinct colors to top-level meshes so parts are
// visually separable in the viewport.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx       context.Context
	converter *convert.Converter
	kernel    kernel.Kernel
	cfg       *config.Config
	log       *zap.Logger
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32        `json:"vertices"`
	Normals  []float32        `json:"normals"`
	Indices  []uint32         `json:"indices"`
	Metadata convert.Metadata `json:"metadata"`
}

// ConvertErrorData is a JSON-serializable conversion error for the frontend.
type ConvertErrorData struct {
	Index   int    `json:"index"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ConvertResult is the full result returned to the frontend.
type ConvertResult struct {
	Meshes []MeshData         `json:"meshes"`
	Errors []ConvertErrorData `json:"errors"`
}

// NewApp creates a new App over the sdfx kernel.
func NewApp(cfg *config.Config, log *zap.Logger) *App {
	k := sdfx.New()
	return &App{
		converter: convert.New(k, log),
		kernel:    k,
		cfg:       cfg,
		log:       log,
	}
}

// startup is called by Wails on app startup. The context is saved so Wails
// runtime methods can be called later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Convert takes an AST document as JSON (plus the original source text for
// fallback parameter extraction) and returns mesh data and per-node errors.
// This is the primary binding called by the frontend editor.
func (a *App) Convert(astJSON string, source string) ConvertResult {
	out := ConvertResult{
		Meshes: []MeshData{},
		Errors: []ConvertErrorData{},
	}

	nodes, err := ast.DecodeProgram([]byte(astJSON))
	if err != nil {
		a.log.Error("AST decode failed", zap.Error(err))
		out.Errors = append(out.Errors, ConvertErrorData{Message: "invalid AST: " + err.Error()})
		return out
	}

	cc := convert.NewContext(a.cfg.Conversion)
	cc.SetSource(source)
	defer cc.ClearSource()

	rctx := a.ctx
	if rctx == nil {
		rctx = context.Background()
	}

	meshes, nodeErrs := a.converter.ConvertProgram(rctx, cc, nodes)
	for _, e := range nodeErrs {
		out.Errors = append(out.Errors, ConvertErrorData{
			Index:   e.Index,
			Type:    e.NodeType,
			Message: e.Message,
		})
	}
	for i, m := range meshes {
		md := m.Metadata
		md.Color = colorPalette[i%len(colorPalette)]
		out.Meshes = append(out.Meshes, MeshData{
			Vertices: m.Mesh.Vertices,
			Normals:  m.Mesh.Normals,
			Indices:  m.Mesh.Indices,
			Metadata: md,
		})
	}
	return out
}

// ConvertCombined converts the whole program into one implicit union and
// returns a single mesh. Used by the export path.
func (a *App) ConvertCombined(astJSON string, source string) ConvertResult {
	out := ConvertResult{
		Meshes: []MeshData{},
		Errors: []ConvertErrorData{},
	}

	nodes, err := ast.DecodeProgram([]byte(astJSON))
	if err != nil {
		out.Errors = append(out.Errors, ConvertErrorData{Message: "invalid AST: " + err.Error()})
		return out
	}

	cc := convert.NewContext(a.cfg.Conversion)
	cc.SetSource(source)
	defer cc.ClearSource()

	rctx := a.ctx
	if rctx == nil {
		rctx = context.Background()
	}

	res := a.converter.ConvertUnion(rctx, cc, nodes)
	if !res.IsOk() {
		out.Errors = append(out.Errors, ConvertErrorData{Message: res.ErrMsg()})
		return out
	}
	m := res.Value()
	out.Meshes = append(out.Meshes, MeshData{
		Vertices: m.Mesh.Vertices,
		Normals:  m.Mesh.Normals,
		Indices:  m.Mesh.Indices,
		Metadata: m.Metadata,
	})
	return out
}
