package server

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"treehealth/internal/domain/service/dashboard"
	"treehealth/internal/domain/service/presentation"
	"treehealth/internal/domain/value"
	"treehealth/internal/infrastructure/render"
	"treehealth/pkg/httpx/reply"
	"treehealth/pkg/httpx/req"
	"treehealth/pkg/rest"
)

//go:embed templates/index.html
var templates embed.FS

type chartBuilder interface {
	Build(ctx context.Context, sel dashboard.Selection) (presentation.ChartSpec, error)
}

type DashboardServer struct {
	pipeline chartBuilder
	sessions *SessionStore
	page     *template.Template
}

func NewDashboardServer(pipeline chartBuilder, sessions *SessionStore) DashboardServer {
	return DashboardServer{
		pipeline: pipeline,
		sessions: sessions,
		page:     template.Must(template.ParseFS(templates, "templates/index.html")),
	}
}

type radioOption struct {
	Label   string
	Value   string
	Checked bool
}

type indexPage struct {
	Boroughs []radioOption
	Modes    []radioOption
}

func (s DashboardServer) getIndex(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := s.sessions.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("sessions.FromContext: %w", err)
	}

	selection := session.controller.State().Selection

	var page indexPage

	for _, b := range value.Boroughs() {
		page.Boroughs = append(page.Boroughs, radioOption{
			Label:   b.String(),
			Value:   b.String(),
			Checked: b == selection.Borough,
		})
	}

	for _, m := range value.AnalysisModes() {
		page.Modes = append(page.Modes, radioOption{
			Label:   m.String(),
			Value:   m.String(),
			Checked: m == selection.Mode,
		})
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, page); err != nil {
		return fmt.Errorf("page.Execute: %w", err)
	}

	reply.Blob(ctx, w, http.StatusOK, "text/html; charset=utf-8", buf.Bytes())

	return nil
}

func (s DashboardServer) getV1Options(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, newRESTOptions())

	return nil
}

func (s DashboardServer) buildFromQuery(r *http.Request) (presentation.ChartSpec, error) {
	selection, err := newDomainSelection(r.URL.Query())
	if err != nil {
		return presentation.ChartSpec{}, fmt.Errorf("newDomainSelection: %w", err)
	}

	spec, err := s.pipeline.Build(r.Context(), selection)
	if err != nil {
		return presentation.ChartSpec{}, fmt.Errorf("pipeline.Build: %w", err)
	}

	return spec, nil
}

func (s DashboardServer) getV1Chart(w http.ResponseWriter, r *http.Request) error {
	spec, err := s.buildFromQuery(r)
	if err != nil {
		return err
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTChart(spec))

	return nil
}

func (s DashboardServer) getV1ChartVegaLite(w http.ResponseWriter, r *http.Request) error {
	spec, err := s.buildFromQuery(r)
	if err != nil {
		return err
	}

	reply.JSON(r.Context(), w, http.StatusOK, render.VegaLite(spec))

	return nil
}

func (s DashboardServer) getV1ChartPNG(w http.ResponseWriter, r *http.Request) error {
	spec, err := s.buildFromQuery(r)
	if err != nil {
		return err
	}

	img, err := render.PNG(spec)
	if err != nil {
		return fmt.Errorf("render.PNG: %w", err)
	}

	w.Header().Set("Cache-Control", "no-store")
	reply.Blob(r.Context(), w, http.StatusOK, "image/png", img)

	return nil
}

func (s DashboardServer) getV1SessionChart(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := s.sessions.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("sessions.FromContext: %w", err)
	}

	view, ok := session.view.Latest()
	if !ok {
		view, _, err = session.controller.Handle(ctx)
		if err != nil {
			return fmt.Errorf("controller.Handle: %w", err)
		}
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTChartView(view))

	return nil
}

func (s DashboardServer) postV1SessionSelection(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Selection

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	session, err := s.sessions.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("sessions.FromContext: %w", err)
	}

	view, published, err := session.controller.Handle(ctx, selectionEvents(request)...)
	if err != nil {
		return fmt.Errorf("controller.Handle: %w", err)
	}

	// более новый выбор уже успел опубликоваться, отдаем то, что сейчас на странице
	if latest, ok := session.view.Latest(); !published && ok && latest.Seq > view.Seq {
		view = latest
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTChartView(view))

	return nil
}
