package notifications

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/PabloPavan/varejao_api/internal/mail"
	"github.com/PabloPavan/varejao_api/internal/orders"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	tmplWelcome       = "welcome.html"
	tmplOrderPlaced   = "order_placed.html"
	tmplAdminNewOrder = "admin_new_order.html"
	tmplOrderShipped  = "order_shipped.html"
)

type RendererOptions struct {
	StoreName string
	SiteURL   string
}

// Renderer turns notification inputs into ready-to-send messages.
type Renderer struct {
	store   string
	siteURL string
	fmt     formatter
	pages   map[string]*template.Template
}

type pageData struct {
	Store   string
	SiteURL string
	Name    string
	Order   orders.Order
}

func NewRenderer(opts RendererOptions) (*Renderer, error) {
	if opts.StoreName == "" {
		opts.StoreName = "Varejão Online"
	}

	r := &Renderer{
		store:   opts.StoreName,
		siteURL: opts.SiteURL,
		fmt:     newFormatter(),
		pages:   map[string]*template.Template{},
	}

	funcs := template.FuncMap{
		"money": r.fmt.money,
		"date":  r.fmt.date,
	}
	for _, name := range []string{tmplWelcome, tmplOrderPlaced, tmplAdminNewOrder, tmplOrderShipped} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Welcome(to, name string) (mail.Message, error) {
	return r.render(tmplWelcome, to,
		fmt.Sprintf("Bem-vindo(a) ao %s!", r.store),
		pageData{Name: name},
	)
}

func (r *Renderer) OrderPlaced(to, name string, o orders.Order) (mail.Message, error) {
	return r.render(tmplOrderPlaced, to,
		fmt.Sprintf("Pedido confirmado - %s", r.store),
		pageData{Name: name, Order: o},
	)
}

func (r *Renderer) AdminNewOrder(to, name string, o orders.Order) (mail.Message, error) {
	return r.render(tmplAdminNewOrder, to,
		fmt.Sprintf("Novo pedido de %s - %s", name, r.fmt.money(o.TotalPrice)),
		pageData{Name: name, Order: o},
	)
}

func (r *Renderer) OrderShipped(to, name string, o orders.Order) (mail.Message, error) {
	return r.render(tmplOrderShipped, to,
		fmt.Sprintf("Atualização do seu pedido: %s", o.Status),
		pageData{Name: name, Order: o},
	)
}

func (r *Renderer) render(page, to, subject string, data pageData) (mail.Message, error) {
	t, ok := r.pages[page]
	if !ok {
		return mail.Message{}, fmt.Errorf("unknown template %s", page)
	}

	data.Store = r.store
	data.SiteURL = r.siteURL

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return mail.Message{}, fmt.Errorf("render %s: %w", page, err)
	}
	return mail.Message{To: to, Subject: subject, HTML: buf.String()}, nil
}
