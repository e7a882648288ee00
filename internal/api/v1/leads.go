package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/hubreach/internal/subscriber"
)

type CaptureEmailLeadInput struct {
	HubID int `path:"hubID" doc:"Hub number"`
	Body  struct {
		Email   string  `json:"email" minLength:"1" maxLength:"320" doc:"Lead email"`
		Name    *string `json:"name,omitempty" maxLength:"255" doc:"Full name as typed into the form"`
		Phone   string  `json:"phone,omitempty" maxLength:"32" doc:"Optional phone number"`
		Company *string `json:"company,omitempty" maxLength:"255" doc:"Company name"`
	}
}

type CaptureSmsLeadInput struct {
	HubID int `path:"hubID" doc:"Hub number"`
	Body  struct {
		PhoneNumber string  `json:"phone_number" minLength:"1" maxLength:"32" doc:"Lead phone number"`
		Name        *string `json:"name,omitempty" maxLength:"255" doc:"Full name as typed into the form"`
		Email       string  `json:"email,omitempty" maxLength:"320" doc:"Optional email"`
		Company     *string `json:"company,omitempty" maxLength:"255" doc:"Company name"`
	}
}

// RegisterLeadRoutes wires the public website form endpoints. Leads always go
// to the hub's default list.
func RegisterLeadRoutes(api huma.API, svc SubscriberService) {
	huma.Register(api, huma.Operation{
		OperationID: "capture-email-lead",
		Method:      http.MethodPost,
		Path:        "/hubs/{hubID}/leads/email",
		Summary:     "Capture a website lead into the hub's email list",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *CaptureEmailLeadInput) (*SubscriberResultOutput, error) {
		hub, err := hubFromPath(input.HubID)
		if err != nil {
			return nil, err
		}

		res := svc.AddLeadToEmailList(ctx, subscriber.Lead{
			Email:       input.Body.Email,
			PhoneNumber: input.Body.Phone,
			Name:        input.Body.Name,
			HubID:       hub,
			Company:     input.Body.Company,
		})
		return &SubscriberResultOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "capture-sms-lead",
		Method:      http.MethodPost,
		Path:        "/hubs/{hubID}/leads/sms",
		Summary:     "Capture a website lead into the hub's SMS list",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *CaptureSmsLeadInput) (*SubscriberResultOutput, error) {
		hub, err := hubFromPath(input.HubID)
		if err != nil {
			return nil, err
		}

		res := svc.AddLeadToSmsList(ctx, subscriber.Lead{
			Email:       input.Body.Email,
			PhoneNumber: input.Body.PhoneNumber,
			Name:        input.Body.Name,
			HubID:       hub,
			Company:     input.Body.Company,
		})
		return &SubscriberResultOutput{Body: res}, nil
	})
}
