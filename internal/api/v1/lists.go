package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/hubreach/internal/domain"
	"github.com/gosuda/hubreach/internal/subscriber"
)

type GetDefaultListInput struct {
	HubID int    `path:"hubID" doc:"Hub number"`
	Type  string `query:"type" enum:"email,sms" required:"true" doc:"List type"`
}

type DefaultList struct {
	ListID   uuid.UUID       `json:"list_id"`
	HubID    domain.HubID    `json:"hub_id"`
	ListType domain.ListType `json:"list_type"`
}

type GetDefaultListOutput struct {
	Body DefaultList
}

func RegisterListRoutes(api huma.API, svc SubscriberService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-default-list",
		Method:      http.MethodGet,
		Path:        "/hubs/{hubID}/lists/default",
		Summary:     "Resolve the default marketing list of a hub",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *GetDefaultListInput) (*GetDefaultListOutput, error) {
		hub, err := hubFromPath(input.HubID)
		if err != nil {
			return nil, err
		}
		listType := domain.ListType(input.Type)

		lookup := svc.ResolveDefaultList(ctx, hub, listType)
		switch lookup.Status {
		case subscriber.LookupFound:
			return &GetDefaultListOutput{Body: DefaultList{
				ListID:   lookup.ID,
				HubID:    hub,
				ListType: listType,
			}}, nil
		case subscriber.LookupNotFound:
			return nil, huma.Error404NotFound("no " + string(listType) + " list for hub")
		case subscriber.LookupInvalid:
			if errors.Is(lookup.Err, domain.ErrInvalidHub) {
				return nil, huma.Error404NotFound("hub not found")
			}
			return nil, huma.Error400BadRequest("invalid list request", lookup.Err)
		default:
			return nil, huma.Error503ServiceUnavailable("list store unavailable", lookup.Err)
		}
	})
}
