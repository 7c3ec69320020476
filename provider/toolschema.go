package provider

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// The dispatcher declares tools once as MCP schemas; each provider
// needs them in its own wire format. All three formats are JSON Schema
// under the hood, so the conversions are structural.

// ConvertToolsToOpenAIFormat converts MCP tool schemas to OpenAI
// function tools.
func ConvertToolsToOpenAIFormat(tools []mcptypes.Tool) []openai.ChatCompletionToolUnionParam {
	if len(tools) == 0 {
		return nil
	}

	result := make([]openai.ChatCompletionToolUnionParam, len(tools))
	for i, tool := range tools {
		params := openai.FunctionParameters{
			"type":       tool.InputSchema.Type,
			"properties": tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			params["required"] = tool.InputSchema.Required
		}

		result[i] = openai.ChatCompletionFunctionTool(
			openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  params,
			},
		)
	}

	return result
}

// ConvertToolsToAnthropicFormat converts MCP tool schemas to Anthropic
// tool params.
func ConvertToolsToAnthropicFormat(tools []mcptypes.Tool) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}

	result := make([]anthropic.ToolUnionParam, len(tools))
	for i, tool := range tools {
		inputSchema := anthropic.ToolInputSchemaParam{
			Properties: tool.InputSchema.Properties,
		}
		if len(tool.InputSchema.Required) > 0 {
			inputSchema.Required = tool.InputSchema.Required
		}

		result[i] = anthropic.ToolUnionParamOfTool(inputSchema, tool.Name)
		if tool.Description != "" {
			result[i].OfTool.Description = anthropic.String(tool.Description)
		}
	}

	return result
}

// ConvertToolsToOllamaFormat converts MCP tool schemas to Ollama API
// tools.
func ConvertToolsToOllamaFormat(tools []mcptypes.Tool) []api.Tool {
	if len(tools) == 0 {
		return nil
	}

	result := make([]api.Tool, len(tools))
	for i, tool := range tools {
		result[i] = api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  convertSchemaToOllamaParameters(tool.InputSchema),
			},
		}
	}

	return result
}

func convertSchemaToOllamaParameters(schema mcptypes.ToolInputSchema) api.ToolFunctionParameters {
	params := api.ToolFunctionParameters{
		Type:       schema.Type,
		Required:   schema.Required,
		Properties: make(map[string]api.ToolProperty),
	}

	for name, value := range schema.Properties {
		params.Properties[name] = convertOllamaProperty(value)
	}

	return params
}

func convertOllamaProperty(value any) api.ToolProperty {
	prop := api.ToolProperty{}

	propMap, ok := value.(map[string]any)
	if !ok {
		raw, err := json.Marshal(value)
		if err != nil {
			return prop
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return prop
		}
		propMap = m
	}

	if typeVal, ok := propMap["type"]; ok {
		switch t := typeVal.(type) {
		case string:
			prop.Type = api.PropertyType{t}
		case []string:
			prop.Type = api.PropertyType(t)
		case []any:
			types := make([]string, 0, len(t))
			for _, v := range t {
				if s, ok := v.(string); ok {
					types = append(types, s)
				}
			}
			prop.Type = api.PropertyType(types)
		}
	}
	if desc, ok := propMap["description"].(string); ok {
		prop.Description = desc
	}
	if enumVal, ok := propMap["enum"].([]any); ok {
		prop.Enum = enumVal
	}
	if items, ok := propMap["items"]; ok {
		prop.Items = items
	}

	return prop
}
