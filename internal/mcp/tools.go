package mcp

import (
	"context"
	"time"

	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
	"invotrack/internal/domain/tracker"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type listClientsInput struct{}

type listClientsOutput struct {
	Clients []client.Client `json:"clients"`
}

type addClientInput struct {
	Name         string `json:"name"`
	Frequency    string `json:"frequency"`
	Instructions string `json:"instructions,omitempty"`
}

type updateClientInput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Frequency    string `json:"frequency"`
	Instructions string `json:"instructions,omitempty"`
}

type clientOutput struct {
	Client client.Client `json:"client"`
}

type removeClientInput struct {
	ID string `json:"id"`
}

type removeClientOutput struct {
	Removed bool `json:"removed"`
}

type setStatusInput struct {
	ClientID string `json:"clientId"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Status   string `json:"status"`
}

type setNotesInput struct {
	ClientID string `json:"clientId"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Notes    string `json:"notes"`
}

type cellOutput struct {
	Cell invoice.Cell `json:"cell"`
}

type getGridInput struct {
	Year   int `json:"year,omitempty"`
	Month  int `json:"month,omitempty"`
	Past   int `json:"past,omitempty"`
	Future int `json:"future,omitempty"`
}

type getGridOutput struct {
	Grid tracker.Grid `json:"grid"`
}

type getStatusesInput struct{}

type getStatusesOutput struct {
	Statuses []invoice.StatusMeta `json:"statuses"`
}

// registerTools wires every tracker operation as an MCP tool.
func registerTools(server *sdkmcp.Server, svc *tracker.Service) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_clients",
		Description: "List all tracked clients with their invoicing frequency",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listClientsInput) (*sdkmcp.CallToolResult, listClientsOutput, error) {
		return nil, listClientsOutput{Clients: svc.Snapshot().Clients}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_client",
		Description: "Add a client. Frequency is one of Monthly, Quarterly, Semi-Annually, Annually",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in addClientInput) (*sdkmcp.CallToolResult, clientOutput, error) {
		freq, err := client.ParseFrequency(in.Frequency)
		if err != nil {
			return nil, clientOutput{}, err
		}
		created, err := svc.AddClient(ctx, tracker.AddClientRequest{
			Name:         in.Name,
			Frequency:    freq,
			Instructions: in.Instructions,
		})
		if err != nil {
			return nil, clientOutput{}, err
		}
		return nil, clientOutput{Client: created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_client",
		Description: "Replace a client record in full. Unknown ids are ignored",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in updateClientInput) (*sdkmcp.CallToolResult, clientOutput, error) {
		freq, err := client.ParseFrequency(in.Frequency)
		if err != nil {
			return nil, clientOutput{}, err
		}
		updated, err := svc.UpdateClient(ctx, tracker.UpdateClientRequest{
			ID:           in.ID,
			Name:         in.Name,
			Frequency:    freq,
			Instructions: in.Instructions,
		})
		if err != nil {
			return nil, clientOutput{}, err
		}
		return nil, clientOutput{Client: updated}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_client",
		Description: "Remove a client and every invoice cell recorded for it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in removeClientInput) (*sdkmcp.CallToolResult, removeClientOutput, error) {
		if err := svc.RemoveClient(ctx, in.ID); err != nil {
			return nil, removeClientOutput{}, err
		}
		return nil, removeClientOutput{Removed: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_invoice_status",
		Description: "Set the invoice status for a client and month (0 = January). Status is NOT_DONE, COMPLETED or RECURRING_DONE",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in setStatusInput) (*sdkmcp.CallToolResult, cellOutput, error) {
		status, err := invoice.ParseStatus(in.Status)
		if err != nil {
			return nil, cellOutput{}, err
		}
		cell, err := svc.SetInvoiceStatus(ctx, in.ClientID, in.Year, in.Month, status)
		if err != nil {
			return nil, cellOutput{}, err
		}
		return nil, cellOutput{Cell: cell}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_invoice_notes",
		Description: "Set notes on an invoice cell without changing its status",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in setNotesInput) (*sdkmcp.CallToolResult, cellOutput, error) {
		cell, err := svc.SetInvoiceNotes(ctx, in.ClientID, in.Year, in.Month, in.Notes)
		if err != nil {
			return nil, cellOutput{}, err
		}
		return nil, cellOutput{Cell: cell}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_grid",
		Description: "Get the invoice grid: a window of months around a center month with each client's effective status per month",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getGridInput) (*sdkmcp.CallToolResult, getGridOutput, error) {
		now := time.Now().UTC()
		center := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		if in.Year != 0 {
			if in.Month < 0 || in.Month > 11 {
				return nil, getGridOutput{}, invoice.ErrInvalidMonth
			}
			center = time.Date(in.Year, time.Month(in.Month+1), 1, 0, 0, 0, 0, time.UTC)
		}
		past, future := in.Past, in.Future
		if past == 0 && future == 0 {
			past, future = -1, -1
		}
		return nil, getGridOutput{Grid: svc.Grid(center, past, future)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_statuses",
		Description: "List the invoice statuses with display labels and descriptions",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getStatusesInput) (*sdkmcp.CallToolResult, getStatusesOutput, error) {
		return nil, getStatusesOutput{Statuses: invoice.StatusCatalog()}, nil
	})
}
