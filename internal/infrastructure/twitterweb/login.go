package twitterweb

import (
	"context"
	"net/http"

	apperrors "github.com/sekai-soft/yurikamome/pkg/errors"
)

type flowResponse struct {
	FlowToken string `json:"flow_token"`
	Status    string `json:"status"`
	Subtasks  []struct {
		SubtaskID string `json:"subtask_id"`
	} `json:"subtasks"`
}

// Login runs the onboarding task flow the web client uses: guest token,
// identifier, optional alternate identifier, password, duplication
// check, and the TOTP challenge when the account has one enrolled.
// On success the jar holds auth_token/ct0/twid session cookies.
func (c *Client) Login(ctx context.Context, username, email, password, mfaSecret string) error {
	if err := c.activateGuestToken(ctx); err != nil {
		return err
	}

	flow, err := c.startLoginFlow(ctx)
	if err != nil {
		return err
	}

	for len(flow.Subtasks) > 0 {
		subtask := flow.Subtasks[0].SubtaskID
		switch subtask {
		case "LoginSuccessSubtask":
			return nil
		case "LoginJsInstrumentationSubtask":
			flow, err = c.advanceFlow(ctx, flow.FlowToken, map[string]any{
				"subtask_id": subtask,
				"js_instrumentation": map[string]any{
					"response": "{}",
					"link":     "next_link",
				},
			})
		case "LoginEnterUserIdentifierSSO":
			flow, err = c.advanceFlow(ctx, flow.FlowToken, map[string]any{
				"subtask_id": subtask,
				"settings_list": map[string]any{
					"setting_responses": []map[string]any{{
						"key":           "user_identifier",
						"response_data": map[string]any{"text_data": map[string]any{"result": username}},
					}},
					"link": "next_link",
				},
			})
		case "LoginEnterAlternateIdentifierSubtask":
			flow, err = c.advanceFlow(ctx, flow.FlowToken, map[string]any{
				"subtask_id": subtask,
				"enter_text": map[string]any{"text": email, "link": "next_link"},
			})
		case "LoginEnterPassword":
			flow, err = c.advanceFlow(ctx, flow.FlowToken, map[string]any{
				"subtask_id": subtask,
				"enter_password": map[string]any{"password": password, "link": "next_link"},
			})
		case "AccountDuplicationCheck":
			flow, err = c.advanceFlow(ctx, flow.FlowToken, map[string]any{
				"subtask_id": subtask,
				"check_logged_in_account": map[string]any{"link": "AccountDuplicationCheck_false"},
			})
		case "LoginTwoFactorAuthChallenge":
			if mfaSecret == "" {
				return apperrors.Wrap(apperrors.ErrUpstream, "account requires a TOTP secret")
			}
			var code string
			code, err = totpCode(mfaSecret)
			if err != nil {
				return err
			}
			flow, err = c.advanceFlow(ctx, flow.FlowToken, map[string]any{
				"subtask_id": subtask,
				"enter_text": map[string]any{"text": code, "link": "next_link"},
			})
		case "LoginAcid":
			flow, err = c.advanceFlow(ctx, flow.FlowToken, map[string]any{
				"subtask_id": subtask,
				"enter_text": map[string]any{"text": email, "link": "next_link"},
			})
		default:
			return apperrors.Wrapf(apperrors.ErrUpstream, "unexpected login subtask %q", subtask)
		}
		if err != nil {
			return err
		}
	}

	return apperrors.Wrap(apperrors.ErrUpstream, "login flow ended without success")
}

func (c *Client) activateGuestToken(ctx context.Context) error {
	var resp struct {
		GuestToken string `json:"guest_token"`
	}
	if err := c.do(ctx, http.MethodPost, guestTokenURL, struct{}{}, &resp); err != nil {
		return err
	}
	if resp.GuestToken == "" {
		return apperrors.Wrap(apperrors.ErrUpstream, "no guest token issued")
	}
	c.guestToken = resp.GuestToken
	return nil
}

func (c *Client) startLoginFlow(ctx context.Context) (*flowResponse, error) {
	body := map[string]any{
		"input_flow_data": map[string]any{
			"flow_context": map[string]any{
				"debug_overrides": map[string]any{},
				"start_location":  map[string]any{"location": "splash_screen"},
			},
		},
	}
	var resp flowResponse
	if err := c.do(ctx, http.MethodPost, loginFlowURL+"?flow_name=login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) advanceFlow(ctx context.Context, flowToken string, input map[string]any) (*flowResponse, error) {
	body := map[string]any{
		"flow_token":     flowToken,
		"subtask_inputs": []map[string]any{input},
	}
	var resp flowResponse
	if err := c.do(ctx, http.MethodPost, loginFlowURL, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
