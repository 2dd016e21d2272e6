package advisor

import "encoding/json"

const diseaseSystemPrompt = `You are an expert agricultural disease detection AI for AgriSetu.

Your role is to analyze crop images and identify diseases with high accuracy. You must provide:
1. Disease name (if any detected)
2. Confidence level (0-100%)
3. Severity (mild, moderate, severe)
4. Affected plant parts
5. Detailed recommendations for treatment
6. Preventive measures for future

If the crop looks healthy, say so clearly. Base your analysis on visible symptoms only.`

const soilSystemPrompt = `You are an expert soil scientist AI for AgriSetu.

Your role is to analyze soil parameters and provide comprehensive recommendations for Indian farmers. Consider:
1. Soil fertility assessment
2. Nutrient deficiencies and excesses
3. Soil health indicators
4. Suitable crops for the soil condition
5. Practical, affordable corrective measures

Give advice appropriate for smallholder farming in India.`

const yieldSystemPrompt = `You are an expert agricultural yield prediction AI for AgriSetu.

Your role is to predict crop yields and provide optimization recommendations for Indian farmers. Consider:
1. Historical yield data for the region
2. Crop variety characteristics
3. Soil and irrigation factors
4. Weather patterns
5. Farming practices
6. Market timing recommendations

Provide realistic predictions based on Indian agricultural conditions and practical recommendations to maximize yield and profit.`

var diseaseTool = toolDef{
	Type: "function",
	Function: toolFunction{
		Name:        "diagnose_crop_disease",
		Description: "Provide a structured crop disease diagnosis from the supplied image",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"isHealthy": {"type": "boolean"},
				"diseaseName": {"type": "string", "description": "Name of the detected disease, or 'Healthy' if none"},
				"confidence": {"type": "number", "description": "Confidence percentage 0-100"},
				"severity": {"type": "string", "enum": ["none", "mild", "moderate", "severe"]},
				"affectedParts": {"type": "array", "items": {"type": "string"}},
				"symptoms": {"type": "array", "items": {"type": "string"}},
				"treatmentRecommendations": {"type": "array", "items": {"type": "string"}},
				"preventiveMeasures": {"type": "array", "items": {"type": "string"}},
				"additionalNotes": {"type": "string"}
			},
			"required": ["isHealthy", "diseaseName", "confidence", "severity", "treatmentRecommendations"],
			"additionalProperties": false
		}`),
	},
}

var soilTool = toolDef{
	Type: "function",
	Function: toolFunction{
		Name:        "analyze_soil",
		Description: "Provide a structured soil health analysis with recommendations",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"fertilityScore": {"type": "number", "description": "Overall fertility score 0-100"},
				"fertilityRating": {"type": "string", "enum": ["poor", "below_average", "average", "good", "excellent"]},
				"nutrientAnalysis": {
					"type": "object",
					"properties": {
						"nitrogen": {
							"type": "object",
							"properties": {
								"status": {"type": "string", "enum": ["deficient", "low", "adequate", "high", "excess"]},
								"recommendation": {"type": "string"}
							},
							"required": ["status", "recommendation"]
						},
						"phosphorus": {
							"type": "object",
							"properties": {
								"status": {"type": "string", "enum": ["deficient", "low", "adequate", "high", "excess"]},
								"recommendation": {"type": "string"}
							},
							"required": ["status", "recommendation"]
						},
						"potassium": {
							"type": "object",
							"properties": {
								"status": {"type": "string", "enum": ["deficient", "low", "adequate", "high", "excess"]},
								"recommendation": {"type": "string"}
							},
							"required": ["status", "recommendation"]
						}
					},
					"required": ["nitrogen", "phosphorus", "potassium"]
				},
				"fertilizerRecommendations": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"name": {"type": "string"},
							"type": {"type": "string", "enum": ["organic", "chemical", "bio-fertilizer"]},
							"quantity": {"type": "string"},
							"applicationMethod": {"type": "string"},
							"timing": {"type": "string"}
						},
						"required": ["name", "type", "quantity"]
					}
				},
				"soilImprovementTips": {"type": "array", "items": {"type": "string"}},
				"suitableCrops": {"type": "array", "items": {"type": "string"}},
				"warnings": {"type": "array", "items": {"type": "string"}},
				"additionalNotes": {"type": "string"}
			},
			"required": ["fertilityScore", "fertilityRating", "nutrientAnalysis", "fertilizerRecommendations", "soilImprovementTips"],
			"additionalProperties": false
		}`),
	},
}

var yieldTool = toolDef{
	Type: "function",
	Function: toolFunction{
		Name:        "predict_yield",
		Description: "Provide structured yield prediction and farming recommendations",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"predictedYield": {
					"type": "object",
					"properties": {
						"value": {"type": "number", "description": "Predicted yield in quintals"},
						"unit": {"type": "string"},
						"totalForFarm": {"type": "number"}
					},
					"required": ["value", "unit", "totalForFarm"]
				},
				"confidenceInterval": {
					"type": "object",
					"properties": {
						"low": {"type": "number"},
						"high": {"type": "number"},
						"confidence": {"type": "number", "description": "Confidence percentage 0-100"}
					},
					"required": ["low", "high", "confidence"]
				},
				"yieldRating": {"type": "string", "enum": ["below_average", "average", "good", "excellent"]},
				"marketEstimate": {
					"type": "object",
					"properties": {
						"estimatedPricePerQuintal": {"type": "number"},
						"totalEstimatedRevenue": {"type": "number"},
						"bestSellingPeriod": {"type": "string"},
						"marketNotes": {"type": "string"}
					},
					"required": ["estimatedPricePerQuintal", "totalEstimatedRevenue"]
				},
				"yieldOptimizationTips": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"tip": {"type": "string"},
							"potentialImpact": {"type": "string"},
							"priority": {"type": "string", "enum": ["high", "medium", "low"]}
						},
						"required": ["tip", "potentialImpact", "priority"]
					}
				},
				"riskFactors": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"risk": {"type": "string"},
							"likelihood": {"type": "string", "enum": ["low", "medium", "high"]},
							"mitigation": {"type": "string"}
						},
						"required": ["risk", "likelihood", "mitigation"]
					}
				},
				"harvestTimeline": {
					"type": "object",
					"properties": {
						"expectedHarvestDate": {"type": "string"},
						"harvestWindow": {"type": "string"},
						"preHarvestActivities": {"type": "array", "items": {"type": "string"}}
					},
					"required": ["expectedHarvestDate", "harvestWindow"]
				},
				"comparisonWithRegionalAverage": {
					"type": "object",
					"properties": {
						"regionalAverage": {"type": "number"},
						"percentageDifference": {"type": "number"},
						"notes": {"type": "string"}
					},
					"required": ["regionalAverage", "percentageDifference"]
				},
				"additionalRecommendations": {"type": "string"}
			},
			"required": ["predictedYield", "confidenceInterval", "yieldRating", "yieldOptimizationTips", "riskFactors"],
			"additionalProperties": false
		}`),
	},
}
