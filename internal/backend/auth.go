// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"net/url"
)

// =============================================================================
// AUTHENTICATION ENDPOINTS
// =============================================================================

// LoginResponse is the body of userLogin.php.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login exchanges credentials and the device fingerprint for a token.
// A success:false answer, or success without a token, is ErrDenied.
func (c *Client) Login(ctx context.Context, username, password, fingerprint string) (string, error) {
	var resp LoginResponse
	err := c.Post(ctx, EndpointLogin, url.Values{
		"username":    {username},
		"password":    {password},
		"fingerprint": {fingerprint},
	}, &resp)
	if err != nil {
		return "", err
	}
	if !resp.Success || resp.Token == "" {
		return "", deniedErr(EndpointLogin, resp.Message)
	}
	return resp.Token, nil
}

// VerifyResponse is the body of verifyUserLogin.php.
type VerifyResponse struct {
	Success       bool       `json:"success"`
	UserID        FlexString `json:"user_id"`
	Message       string     `json:"message"`
	RemainingTime FlexInt    `json:"remainingTime"`
}

// LoggedIn reports whether the response identifies a valid user.
func (v *VerifyResponse) LoggedIn() bool {
	return v.Success && v.UserID != ""
}

// Verify validates token for this device. success:false is not an error
// here: the caller needs the message and remaining time either way.
func (c *Client) Verify(ctx context.Context, token, fingerprint string) (*VerifyResponse, error) {
	var resp VerifyResponse
	err := c.Post(ctx, EndpointVerify, url.Values{
		"token":       {token},
		"fingerprint": {fingerprint},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HasResourcePermission asks whether the session may use resourceName.
func (c *Client) HasResourcePermission(ctx context.Context, token, resourceName string) (bool, error) {
	var resp successResponse
	err := c.Post(ctx, EndpointResourcePermission, url.Values{
		"token":        {token},
		"resourceName": {resourceName},
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// CheckPermission asks whether the session may open the page identified by
// portID.
func (c *Client) CheckPermission(ctx context.Context, token, portID string) (bool, error) {
	var resp successResponse
	err := c.Post(ctx, EndpointCheckPermission, url.Values{
		"token":  {token},
		"portID": {portID},
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// ConnectionStatus is the body of checkDatabaseConnection.php.
type ConnectionStatus struct {
	Connection bool   `json:"connection"`
	Version    string `json:"version"`
}

// CheckDatabaseConnection reports whether the backend can reach its
// database. It is a GET and never runs the preflight check.
func (c *Client) CheckDatabaseConnection(ctx context.Context) (*ConnectionStatus, error) {
	var resp ConnectionStatus
	if err := c.Get(ctx, EndpointDatabaseConnection, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete calls a delete endpoint with the given id field. success:false is
// ErrDenied.
func (c *Client) Delete(ctx context.Context, endpoint, token, idField, id string) error {
	var resp successResponse
	err := c.Post(ctx, endpoint, url.Values{
		"token": {token},
		idField: {id},
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.Success {
		return deniedErr(endpoint, resp.Message)
	}
	return nil
}
