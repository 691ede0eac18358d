package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/service"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Rentals       service.RentalService
	Inventory     service.InventoryService
	LineItems     service.LineItemService
	Damages       service.DamageService
	Notifications service.NotificationService
	Clients       service.ClientService
	Reports       service.ReportService
}

// NewRouter builds the full route table. Resource paths follow the names the
// business uses: locacoes (contracts), inventario (stock), itens-locados
// (allocations), danos (damage), notificacoes, relatorios, clientes.
func NewRouter(h *Handlers, exposeMetrics bool) *mux.Router {
	rental := NewRentalHandler(h.Rentals)
	inventory := NewInventoryHandler(h.Inventory)
	lineItem := NewLineItemHandler(h.LineItems)
	damage := NewDamageHandler(h.Damages)
	notification := NewNotificationHandler(h.Notifications)
	client := NewClientHandler(h.Clients)
	report := NewReportHandler(h.Reports)

	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	if exposeMetrics {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	// Contracts. Fixed segments are registered before the {id} routes so
	// "ativos" never parses as an id.
	r.HandleFunc("/locacoes", rental.Create).Methods(http.MethodPost)
	r.HandleFunc("/locacoes", rental.List).Methods(http.MethodGet)
	r.HandleFunc("/locacoes/ativos", rental.ListActive).Methods(http.MethodGet)
	r.HandleFunc("/locacoes/alertas", rental.ListOverdue).Methods(http.MethodGet)
	r.HandleFunc("/locacoes/cliente/{id:[0-9]+}", rental.ListByClient).Methods(http.MethodGet)
	r.HandleFunc("/locacoes/{id:[0-9]+}", rental.Get).Methods(http.MethodGet)
	r.HandleFunc("/locacoes/{id:[0-9]+}/prorrogacao", rental.Extend).Methods(http.MethodPut)
	r.HandleFunc("/locacoes/{id:[0-9]+}/confirmar-devolucao", rental.ConfirmReturn).Methods(http.MethodPatch)
	r.HandleFunc("/locacoes/{id:[0-9]+}/finalizar-antecipadamente", rental.FinalizeEarly).Methods(http.MethodPut)
	r.HandleFunc("/locacoes/{id:[0-9]+}/reativar", rental.Reactivate).Methods(http.MethodPatch)

	// Inventory
	r.HandleFunc("/inventario", inventory.Create).Methods(http.MethodPost)
	r.HandleFunc("/inventario", inventory.List).Methods(http.MethodGet)
	r.HandleFunc("/inventario/disponiveis", inventory.ListAvailable).Methods(http.MethodGet)
	r.HandleFunc("/inventario/reconciliar", inventory.Reconcile).Methods(http.MethodPost)
	r.HandleFunc("/inventario/{id:[0-9]+}", inventory.Get).Methods(http.MethodGet)
	r.HandleFunc("/inventario/{id:[0-9]+}", inventory.SetTotal).Methods(http.MethodPut)
	r.HandleFunc("/inventario/{id:[0-9]+}", inventory.Delete).Methods(http.MethodDelete)

	// Line-item allocations
	r.HandleFunc("/itens-locados", lineItem.Add).Methods(http.MethodPost)
	r.HandleFunc("/itens-locados/{id:[0-9]+}", lineItem.ListByContract).Methods(http.MethodGet)
	r.HandleFunc("/itens-locados/{id:[0-9]+}/devolver", lineItem.MarkReturned).Methods(http.MethodPatch)
	r.HandleFunc("/itens-locados/{id:[0-9]+}/quantidade", lineItem.UpdateQuantity).Methods(http.MethodPatch)

	// Damage reports
	r.HandleFunc("/danos", damage.Record).Methods(http.MethodPost)
	r.HandleFunc("/danos", damage.ListAll).Methods(http.MethodGet)
	r.HandleFunc("/danos/contrato/{id:[0-9]+}", damage.ListByContract).Methods(http.MethodGet)

	// Notifications
	r.HandleFunc("/notificacoes", notification.ListAll).Methods(http.MethodGet)
	r.HandleFunc("/notificacoes/nao-lidas", notification.ListUnread).Methods(http.MethodGet)
	r.HandleFunc("/notificacoes/gerar-automaticas", notification.Generate).Methods(http.MethodPost)
	r.HandleFunc("/notificacoes/marcar-todas-lidas", notification.MarkAllRead).Methods(http.MethodPatch)
	r.HandleFunc("/notificacoes/{id:[0-9]+}/lida", notification.MarkRead).Methods(http.MethodPatch)
	r.HandleFunc("/notificacoes/{id:[0-9]+}", notification.Delete).Methods(http.MethodDelete)

	// Reports
	r.HandleFunc("/relatorios/visao-geral", report.Overview).Methods(http.MethodGet)
	r.HandleFunc("/relatorios/status", report.StatusSummary).Methods(http.MethodGet)
	r.HandleFunc("/relatorios/cliente/{id:[0-9]+}", report.ByClient).Methods(http.MethodGet)
	r.HandleFunc("/relatorios/inventario/{id:[0-9]+}", report.EquipmentUsage).Methods(http.MethodGet)

	// Clients
	r.HandleFunc("/clientes", client.Create).Methods(http.MethodPost)
	r.HandleFunc("/clientes", client.List).Methods(http.MethodGet)
	r.HandleFunc("/clientes/{id:[0-9]+}", client.Get).Methods(http.MethodGet)
	r.HandleFunc("/clientes/{id:[0-9]+}", client.Update).Methods(http.MethodPut)
	r.HandleFunc("/clientes/{id:[0-9]+}", client.Delete).Methods(http.MethodDelete)

	return r
}
