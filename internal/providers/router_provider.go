package providers

import (
	"net/http"
	"puzzlestats/internal/structures"
	"strings"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
	byURL  map[string]*methodRouter
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(http.MethodPost, url, handler)
}

// add lets several methods share one url; the first registration fixes the
// route's position.
func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	mr, ok := rp.byURL[url]
	if !ok {
		mr = &methodRouter{handlers: make(map[string]http.Handler)}
		rp.byURL[url] = mr
		rp.routes = append(rp.routes, structures.Route{Url: url, Handler: mr})
	}
	mr.handle(method, handler)
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{byURL: make(map[string]*methodRouter)}
}

type methodRouter struct {
	methods  []string
	handlers map[string]http.Handler
}

func (m *methodRouter) handle(method string, handler http.Handler) {
	if _, ok := m.handlers[method]; !ok {
		m.methods = append(m.methods, method)
	}
	m.handlers[method] = handler
}

func (m *methodRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, ok := m.handlers[r.Method]
	if !ok {
		w.Header().Set("Allow", strings.Join(m.methods, ", "))
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	h.ServeHTTP(w, r)
}
