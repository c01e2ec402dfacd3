package clients

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Lelo88/backoffice-client-golang/internal/addresses"
	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/logging"
	"github.com/Lelo88/backoffice-client-golang/internal/similarname"
)

// Service agrupa las llamadas de cliente que usa la pantalla.
type Service struct {
	api       apiclient.API
	addresses *addresses.Remote
	logger    *zap.Logger
}

func NewService(api apiclient.API, logger *zap.Logger) *Service {
	return &Service{
		api:       api,
		addresses: addresses.NewRemote(api),
		logger:    logging.OrNop(logger),
	}
}

// Payload arma el cuerpo del alta: los valores del formulario más las
// direcciones cargadas como borrador, sin sus claves locales.
func Payload(values map[string]any, direcciones []addresses.Direccion) map[string]any {
	payload := make(map[string]any, len(values)+1)
	for name, value := range values {
		payload[name] = value
	}
	if raw, ok := payload[FieldDiasCredito].(string); ok {
		if days, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			payload[FieldDiasCredito] = days
		}
	}
	if len(direcciones) > 0 {
		stripped := make([]addresses.Direccion, 0, len(direcciones))
		for _, direccion := range direcciones {
			stripped = append(stripped, direccion.Payload())
		}
		payload[FieldDirecciones] = stripped
	}
	return payload
}

// Create da de alta un cliente. Un nombre parecido a uno existente vuelve
// como 409 SIMILAR_NAME; ver CreateFlow.
func (service *Service) Create(ctx context.Context, payload map[string]any) (Cliente, error) {
	var created Cliente
	if err := service.api.Post(ctx, "/clientes", payload, &created); err != nil {
		return Cliente{}, err
	}
	service.logger.Info("cliente creado", zap.String("id", string(created.ID)))
	return created, nil
}

// CreateFlow devuelve el flujo de alta con confirmación de nombre similar.
func (service *Service) CreateFlow() *similarname.Flow[Cliente] {
	return similarname.New(service.Create, similarname.WithLogger(service.logger))
}

// Get trae el cliente y sus direcciones en paralelo.
func (service *Service) Get(ctx context.Context, id string) (Cliente, error) {
	var (
		cliente     Cliente
		direcciones []addresses.Direccion
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return service.api.Get(groupCtx, "/clientes/"+url.PathEscape(id), &cliente)
	})
	group.Go(func() error {
		var err error
		direcciones, err = service.addresses.List(groupCtx, id)
		return err
	})
	if err := group.Wait(); err != nil {
		return Cliente{}, fmt.Errorf("get cliente %s: %w", id, err)
	}
	cliente.Direcciones = direcciones
	return cliente, nil
}

// Addresses expone el remote de direcciones para el manager de la pantalla.
func (service *Service) Addresses() *addresses.Remote {
	return service.addresses
}
