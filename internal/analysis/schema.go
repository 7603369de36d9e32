package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Model output is validated against a schema before it is accepted, so a
// structurally wrong payload triggers the same fix-retry path as invalid JSON.

const financialSchemaJSON = `{
  "type": "object",
  "required": ["institutionDetails", "courseDetails", "financialBreakdown"],
  "properties": {
    "institutionDetails": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "campus": {"type": "string"},
        "country": {"type": "string"},
        "website": {"type": "string"},
        "ranking": {"type": "string"},
        "registrationCode": {"type": "string"}
      }
    },
    "courseDetails": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "level": {"type": "string"},
        "duration": {"type": "string"},
        "startDate": {"type": "string"},
        "studyMode": {"type": "string"}
      }
    },
    "studentProfile": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "studentId": {"type": "string"},
        "nationality": {"type": "string"}
      }
    },
    "financialBreakdown": {
      "type": "object",
      "properties": {
        "tuitionTotal": {"type": "string"},
        "tuitionPerYear": {"type": "string"},
        "deposit": {"type": "string"},
        "currency": {"type": "string"},
        "estimatedLivingCost": {"type": "string"},
        "otherFees": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "label": {"type": "string"},
              "amount": {"type": "string"}
            }
          }
        }
      }
    },
    "offerConditions": {
      "type": "object",
      "properties": {
        "offerType": {"type": "string"},
        "conditions": {"type": "array", "items": {"type": "string"}},
        "acceptanceDeadline": {"type": "string"}
      }
    },
    "complianceRequirements": {
      "type": "object",
      "properties": {
        "visaType": {"type": "string"},
        "fundsToShow": {"type": "string"},
        "englishRequirement": {"type": "string"},
        "healthCover": {"type": "string"},
        "requiredDocuments": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

const strategicSchemaJSON = `{
  "type": "object",
  "required": ["strategicAnalysis", "actionPlan"],
  "properties": {
    "strategicAnalysis": {
      "type": "object",
      "required": ["summary"],
      "properties": {
        "summary": {"type": "string"},
        "analysisScore": {"type": "integer", "minimum": 0, "maximum": 100},
        "strengths": {"type": "array", "items": {"type": "string"}},
        "risks": {"type": "array", "items": {"type": "string"}},
        "keyFindings": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "title": {"type": "string"},
              "detail": {"type": "string"},
              "severity": {"type": "string"}
            }
          }
        }
      }
    },
    "actionPlan": {
      "type": "object",
      "properties": {
        "immediate": {"type": "array", "items": {"type": "string"}},
        "beforeDeparture": {"type": "array", "items": {"type": "string"}},
        "recommendations": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var (
	financialSchema = mustCompileSchema("financial.json", financialSchemaJSON)
	strategicSchema = mustCompileSchema("strategic.json", strategicSchemaJSON)
)

func mustCompileSchema(name, raw string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader([]byte(raw))); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

func validateAgainstSchema(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
