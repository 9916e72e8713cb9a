// Package handler runs one SQL invocation: credentials, connection, request parsing,
// validation, execution, result encoding and teardown.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/canonical/lxd/shared/logger"

	"github.com/querygate/querygate/internal/db"
	"github.com/querygate/querygate/internal/secrets"
	"github.com/querygate/querygate/internal/statement"
	"github.com/querygate/querygate/rest/types"
)

// Handler is stateless: every call to Handle resolves the secret and opens a new connection.
type Handler struct {
	Secrets   secrets.Store
	Connector db.Connector

	SecretID string
	Database types.DatabaseConfig

	// StrictTeardown reports a failure to close the connection even when the statement
	// succeeded. Otherwise the failure is only logged.
	StrictTeardown bool
}

// New returns a handler for the given config.
func New(config types.DaemonConfig, store secrets.Store, connector db.Connector) *Handler {
	return &Handler{
		Secrets:        store,
		Connector:      connector,
		SecretID:       config.SecretStore.SecretID,
		Database:       config.Database,
		StrictTeardown: config.StrictTeardown,
	}
}

// Handle runs the statement in body and returns the status and JSON body to send back.
// It never returns an error: every failure is turned into a response.
func (h *Handler) Handle(ctx context.Context, body []byte) (resp types.Response) {
	creds, err := h.credentials(ctx)
	if err != nil {
		return errorResponse(err)
	}

	d := db.NewDescriptor(h.Database, *creds)
	logger.Info("Establishing database connection", logger.Ctx{"database": d.String()})
	conn, err := h.Connector.Connect(ctx, d)
	if err != nil {
		logger.Error("Failed to connect to the database", logger.Ctx{"database": d.String(), "err": err})
		return errorResponse(newError(ConnectionError, fmt.Sprintf("Error connecting to the database: %v", err), err))
	}

	defer func() {
		resp = h.teardown(conn, resp)
	}()

	req, err := parseRequest(body)
	if err != nil {
		return errorResponse(err)
	}

	logger.Info("Retrieved query", logger.Ctx{"query": req.Query, "format": req.Format})

	result, err := h.execute(ctx, conn, req)
	if err != nil {
		return errorResponse(err)
	}

	return types.Response{StatusCode: http.StatusOK, Body: result}
}

func (h *Handler) credentials(ctx context.Context) (*secrets.Credentials, error) {
	logger.Info("Retrieving database credentials", logger.Ctx{"secret": h.SecretID})
	creds, err := secrets.Resolve(ctx, h.Secrets, h.SecretID)
	if err != nil {
		var parseErr *secrets.ParseError
		if errors.As(err, &parseErr) {
			logger.Error("Failed to parse secret", logger.Ctx{"secret": h.SecretID, "err": err})
			return nil, newError(SecretParseError, "Error parsing secret JSON.", err)
		}

		logger.Error("Failed to retrieve secret", logger.Ctx{"secret": h.SecretID, "err": err})
		return nil, newError(SecretRetrievalError, fmt.Sprintf("Error retrieving secret: %v", err), err)
	}

	return creds, nil
}

func parseRequest(body []byte) (*types.SQLQuery, error) {
	req := &types.SQLQuery{}
	err := json.Unmarshal(body, req)
	if err != nil {
		return nil, newError(RequestParseError, "Invalid JSON input.", err)
	}

	if req.Query == "" {
		return nil, newError(MissingQueryError, "No SQL query provided in the request.", nil)
	}

	switch req.Format {
	case "":
		req.Format = types.OutputText
	case types.OutputText, types.OutputRows:
	default:
		return nil, newError(ValidationError, fmt.Sprintf("Invalid output format %q.", req.Format), nil)
	}

	err = statement.Validate(req.Query)
	if err != nil {
		return nil, newError(ValidationError, err.Error(), err)
	}

	return req, nil
}

func (h *Handler) execute(ctx context.Context, conn db.Conn, req *types.SQLQuery) (string, error) {
	if statement.Classify(req.Query) == statement.CategoryMutation {
		affected, err := conn.Exec(ctx, req.Query)
		if err != nil {
			logger.Error("Failed to execute SQL query", logger.Ctx{"err": err})
			return "", newError(ExecutionError, fmt.Sprintf("Error executing SQL query: %v", err), err)
		}

		return encodeBody(fmt.Sprintf("Query executed successfully! %d row(s) affected.", affected))
	}

	result, err := conn.Query(ctx, req.Query)
	if err != nil {
		logger.Error("Failed to execute SQL query", logger.Ctx{"err": err})
		return "", newError(ExecutionError, fmt.Sprintf("Error executing SQL query: %v", err), err)
	}

	rows := statement.NewRows(result.Columns, result.Rows)
	if req.Format == types.OutputRows {
		return encodeBody(rows)
	}

	listing := statement.Render(h.Database.Name, rows)
	logger.Debug("Rendered query result", logger.Ctx{"rows": len(rows)})

	return encodeBody(listing)
}

// teardown closes the connection. A close failure replaces resp only in strict mode.
func (h *Handler) teardown(conn db.Conn, resp types.Response) types.Response {
	err := conn.Close()
	if err == nil {
		logger.Info("Database connection closed")
		return resp
	}

	logger.Error("Failed to close database connection", logger.Ctx{"err": err, "status": resp.StatusCode})
	if !h.StrictTeardown {
		return resp
	}

	return errorResponse(newError(TeardownError, fmt.Sprintf("Error closing connection: %v", err), err))
}

func errorResponse(err error) types.Response {
	var handlerErr *Error
	if !errors.As(err, &handlerErr) {
		handlerErr = newError(ExecutionError, err.Error(), err)
	}

	body, encodeErr := encodeBody(handlerErr.Message)
	if encodeErr != nil {
		body = `"Internal error"`
	}

	return types.Response{StatusCode: handlerErr.Kind.Status(), Body: body}
}

// encodeBody encodes v as JSON without HTML escaping and without a trailing newline.
func encodeBody(v any) (string, error) {
	buf := bytes.Buffer{}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(v)
	if err != nil {
		return "", newError(ExecutionError, fmt.Sprintf("Error encoding query result: %v", err), err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}
