package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asesorlab/asesor-mcp/internal/engine"
)

// ToolName is the single tool this relay exposes.
const ToolName = "getLatestClientAnalysis"

// AnalysisTool builds the static tool definition advertised via tools/list.
func AnalysisTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Obtiene el último análisis de portafolio de un cliente y, opcionalmente, un análisis adicional del tipo solicitado, combinados en un solo informe de texto."),
		mcp.WithNumber("id_cliente",
			mcp.Required(),
			mcp.Description("Identificador numérico del cliente"),
		),
		mcp.WithString("tipo",
			mcp.Required(),
			mcp.Description("Tipo de análisis solicitado"),
			mcp.Enum(engine.TypePortfolio, engine.TypeTickerInfo, engine.TypeReplacement),
		),
	)
}
