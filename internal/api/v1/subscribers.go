package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/hubreach/internal/subscriber"
)

type AddEmailSubscriberInput struct {
	HubID int `path:"hubID" doc:"Hub number"`
	Body  struct {
		Email    string    `json:"email" minLength:"1" maxLength:"320" doc:"Subscriber email"`
		ListID   uuid.UUID `json:"list_id" doc:"Target email list"`
		FullName *string   `json:"full_name,omitempty" maxLength:"255" doc:"Full name, split on the first space"`
		Phone    *string   `json:"phone,omitempty" maxLength:"32" doc:"Optional phone number"`
		Company  *string   `json:"company,omitempty" maxLength:"255" doc:"Company name"`
	}
}

type AddSmsSubscriberInput struct {
	HubID int `path:"hubID" doc:"Hub number"`
	Body  struct {
		PhoneNumber string    `json:"phone_number" minLength:"1" maxLength:"32" doc:"Subscriber phone number"`
		ListID      uuid.UUID `json:"list_id" doc:"Target SMS list"`
		FullName    *string   `json:"full_name,omitempty" maxLength:"255" doc:"Full name, split on the first space"`
		Email       *string   `json:"email,omitempty" maxLength:"320" doc:"Optional email"`
		Company     *string   `json:"company,omitempty" maxLength:"255" doc:"Company name"`
	}
}

// SubscriberResultOutput carries the composite result. A failed insert is still
// a 200; callers inspect success.
type SubscriberResultOutput struct {
	Body subscriber.Result
}

type EmailExistsInput struct {
	HubID int    `path:"hubID" doc:"Hub number"`
	Email string `query:"email" required:"true" minLength:"1" doc:"Email to look up"`
}

type SmsExistsInput struct {
	HubID int    `path:"hubID" doc:"Hub number"`
	Phone string `query:"phone" required:"true" minLength:"1" doc:"Phone number to look up"`
}

type ExistsOutput struct {
	Body struct {
		Exists bool `json:"exists"`
	}
}

func RegisterSubscriberRoutes(api huma.API, svc SubscriberService) {
	huma.Register(api, huma.Operation{
		OperationID: "add-email-subscriber",
		Method:      http.MethodPost,
		Path:        "/hubs/{hubID}/subscribers/email",
		Summary:     "Add a subscriber to an email list",
		Tags:        []string{"Subscribers"},
	}, func(ctx context.Context, input *AddEmailSubscriberInput) (*SubscriberResultOutput, error) {
		hub, err := hubFromPath(input.HubID)
		if err != nil {
			return nil, err
		}

		res := svc.AddEmailSubscriber(ctx, subscriber.EmailSubscriberParams{
			Email:    input.Body.Email,
			ListID:   input.Body.ListID,
			FullName: input.Body.FullName,
			HubID:    hub,
			Phone:    input.Body.Phone,
			Company:  input.Body.Company,
		})
		return &SubscriberResultOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-sms-subscriber",
		Method:      http.MethodPost,
		Path:        "/hubs/{hubID}/subscribers/sms",
		Summary:     "Add a subscriber to an SMS list",
		Tags:        []string{"Subscribers"},
	}, func(ctx context.Context, input *AddSmsSubscriberInput) (*SubscriberResultOutput, error) {
		hub, err := hubFromPath(input.HubID)
		if err != nil {
			return nil, err
		}

		res := svc.AddSmsSubscriber(ctx, subscriber.SmsSubscriberParams{
			PhoneNumber: input.Body.PhoneNumber,
			ListID:      input.Body.ListID,
			FullName:    input.Body.FullName,
			HubID:       hub,
			Email:       input.Body.Email,
			Company:     input.Body.Company,
		})
		return &SubscriberResultOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "email-subscriber-exists",
		Method:      http.MethodGet,
		Path:        "/hubs/{hubID}/subscribers/email/exists",
		Summary:     "Check whether an email is subscribed in a hub",
		Tags:        []string{"Subscribers"},
	}, func(ctx context.Context, input *EmailExistsInput) (*ExistsOutput, error) {
		hub, err := hubFromPath(input.HubID)
		if err != nil {
			return nil, err
		}

		ok, err := svc.CheckEmailSubscribed(ctx, input.Email, hub)
		if err != nil {
			return nil, huma.Error503ServiceUnavailable("subscriber store unavailable", err)
		}

		out := &ExistsOutput{}
		out.Body.Exists = ok
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "sms-subscriber-exists",
		Method:      http.MethodGet,
		Path:        "/hubs/{hubID}/subscribers/sms/exists",
		Summary:     "Check whether a phone number is subscribed in a hub",
		Tags:        []string{"Subscribers"},
	}, func(ctx context.Context, input *SmsExistsInput) (*ExistsOutput, error) {
		hub, err := hubFromPath(input.HubID)
		if err != nil {
			return nil, err
		}

		ok, err := svc.CheckSmsSubscribed(ctx, input.Phone, hub)
		if err != nil {
			return nil, huma.Error503ServiceUnavailable("subscriber store unavailable", err)
		}

		out := &ExistsOutput{}
		out.Body.Exists = ok
		return out, nil
	})
}
