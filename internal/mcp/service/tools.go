package service

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nocturne-rpg/nocturne/internal/mcp/domain"
	apperrors "github.com/nocturne-rpg/nocturne/internal/platform/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/nocturne-rpg/nocturne/internal/mcp/service"

func registerDiceTools(mcpServer *mcp.Server, deps domain.Deps) {
	addTool(mcpServer, domain.RollPoolTool(), domain.RollPoolHandler(deps))
}

func registerCharacterTools(mcpServer *mcp.Server, deps domain.Deps) {
	addTool(mcpServer, domain.RouseCheckTool(), domain.RouseCheckHandler(deps))
	addTool(mcpServer, domain.RemorseRollTool(), domain.RemorseRollHandler(deps))
	addTool(mcpServer, domain.FrenzyCheckTool(), domain.FrenzyCheckHandler(deps))
	addTool(mcpServer, domain.FrenzyClearTool(), domain.FrenzyClearHandler(deps))
}

func registerCombatTools(mcpServer *mcp.Server, deps domain.Deps) {
	addTool(mcpServer, domain.CombatStartTool(), domain.CombatStartHandler(deps))
	addTool(mcpServer, domain.CombatJoinTool(), domain.CombatJoinHandler(deps))
	addTool(mcpServer, domain.CombatInitiativeTool(), domain.CombatInitiativeHandler(deps))
	addTool(mcpServer, domain.CombatTurnTool(), domain.CombatTurnHandler(deps))
	addTool(mcpServer, domain.CombatAttackTool(), domain.CombatAttackHandler(deps))
	addTool(mcpServer, domain.CombatReloadTool(), domain.CombatReloadHandler(deps))
	addTool(mcpServer, domain.CombatEndTool(), domain.CombatEndHandler(deps))
}

func registerChronicleTools(mcpServer *mcp.Server, deps domain.Deps) {
	addTool(mcpServer, domain.HuntTool(), domain.HuntHandler(deps))
	addTool(mcpServer, domain.FeedTool(), domain.FeedHandler(deps))
	addTool(mcpServer, domain.TravelTool(), domain.TravelHandler(deps))
	addTool(mcpServer, domain.CityAdjustTool(), domain.CityAdjustHandler(deps))
}

// registerCityResources registers readable city MCP resources.
func registerCityResources(mcpServer *mcp.Server, deps domain.Deps) {
	mcpServer.AddResourceTemplate(domain.CitySummaryResource(), domain.CitySummaryResourceHandler(deps))
	mcpServer.AddResource(domain.ZoneListResource(), domain.ZoneListResourceHandler(deps))
}

// addTool registers a tool with a tracing span around dispatch.
func addTool[I, O any](mcpServer *mcp.Server, tool *mcp.Tool, handler mcp.ToolHandlerFor[I, O]) {
	mcp.AddTool(mcpServer, tool, traced(tool.Name, handler))
}

// traced wraps a handler with a dispatch span. Failures are recorded on
// the span and returned as localized status errors.
func traced[I, O any](name string, handler mcp.ToolHandlerFor[I, O]) mcp.ToolHandlerFor[I, O] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input I) (*mcp.CallToolResult, O, error) {
		ctx, span := otel.Tracer(tracerName).Start(ctx, "mcp.tool/"+name,
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		res, out, err := handler(ctx, req, input)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			err = apperrors.HandleError(err, apperrors.DefaultLocale)
		}
		return res, out, err
	}
}
