package advisor

// DiseaseDiagnosis is the structured result of a crop image diagnosis.
type DiseaseDiagnosis struct {
	IsHealthy                bool     `json:"isHealthy"`
	DiseaseName              string   `json:"diseaseName"`
	Confidence               float64  `json:"confidence"`
	Severity                 string   `json:"severity"`
	AffectedParts            []string `json:"affectedParts,omitempty"`
	Symptoms                 []string `json:"symptoms,omitempty"`
	TreatmentRecommendations []string `json:"treatmentRecommendations"`
	PreventiveMeasures       []string `json:"preventiveMeasures,omitempty"`
	AdditionalNotes          string   `json:"additionalNotes,omitempty"`
}

// SoilSample carries the measured soil parameters for analysis.
// Nil pointer fields mean the farmer did not provide that reading.
type SoilSample struct {
	PH            *float64 `json:"ph,omitempty"`
	Nitrogen      *float64 `json:"nitrogen,omitempty"`
	Phosphorus    *float64 `json:"phosphorus,omitempty"`
	Potassium     *float64 `json:"potassium,omitempty"`
	Moisture      *float64 `json:"moisture,omitempty"`
	OrganicMatter *float64 `json:"organicMatter,omitempty"`
	Location      string   `json:"location,omitempty"`
	CropType      string   `json:"cropType,omitempty"`
}

// NutrientStatus rates a single macronutrient level.
type NutrientStatus struct {
	Status         string `json:"status"`
	Recommendation string `json:"recommendation"`
}

// NutrientAnalysis covers the three primary macronutrients.
type NutrientAnalysis struct {
	Nitrogen   NutrientStatus `json:"nitrogen"`
	Phosphorus NutrientStatus `json:"phosphorus"`
	Potassium  NutrientStatus `json:"potassium"`
}

// FertilizerRecommendation is one suggested fertilizer application.
type FertilizerRecommendation struct {
	Name              string `json:"name"`
	Type              string `json:"type"`
	Quantity          string `json:"quantity"`
	ApplicationMethod string `json:"applicationMethod,omitempty"`
	Timing            string `json:"timing,omitempty"`
}

// SoilAnalysis is the structured result of a soil parameter analysis.
type SoilAnalysis struct {
	FertilityScore            float64                    `json:"fertilityScore"`
	FertilityRating           string                     `json:"fertilityRating"`
	NutrientAnalysis          NutrientAnalysis           `json:"nutrientAnalysis"`
	FertilizerRecommendations []FertilizerRecommendation `json:"fertilizerRecommendations"`
	SoilImprovementTips       []string                   `json:"soilImprovementTips"`
	SuitableCrops             []string                   `json:"suitableCrops,omitempty"`
	Warnings                  []string                   `json:"warnings,omitempty"`
	AdditionalNotes           string                     `json:"additionalNotes,omitempty"`
}

// YieldInput describes a farm and crop for yield prediction.
type YieldInput struct {
	CropType          string  `json:"cropType"`
	Variety           string  `json:"variety,omitempty"`
	FarmSize          float64 `json:"farmSize"`
	SoilType          string  `json:"soilType,omitempty"`
	IrrigationType    string  `json:"irrigationType,omitempty"`
	FertilizersUsed   string  `json:"fertilizersUsed,omitempty"`
	SowingDate        string  `json:"sowingDate,omitempty"`
	Location          string  `json:"location,omitempty"`
	PreviousYield     string  `json:"previousYield,omitempty"`
	WeatherConditions string  `json:"weatherConditions,omitempty"`
}

// PredictedYield is the headline yield figure.
type PredictedYield struct {
	Value        float64 `json:"value"`
	Unit         string  `json:"unit"`
	TotalForFarm float64 `json:"totalForFarm"`
}

// ConfidenceInterval bounds the prediction.
type ConfidenceInterval struct {
	Low        float64 `json:"low"`
	High       float64 `json:"high"`
	Confidence float64 `json:"confidence"`
}

// MarketEstimate is the revenue outlook for the predicted harvest.
type MarketEstimate struct {
	EstimatedPricePerQuintal float64 `json:"estimatedPricePerQuintal"`
	TotalEstimatedRevenue    float64 `json:"totalEstimatedRevenue"`
	BestSellingPeriod        string  `json:"bestSellingPeriod,omitempty"`
	MarketNotes              string  `json:"marketNotes,omitempty"`
}

// OptimizationTip is one actionable yield improvement.
type OptimizationTip struct {
	Tip             string `json:"tip"`
	PotentialImpact string `json:"potentialImpact"`
	Priority        string `json:"priority"`
}

// RiskFactor is one identified threat to the predicted yield.
type RiskFactor struct {
	Risk       string `json:"risk"`
	Likelihood string `json:"likelihood"`
	Mitigation string `json:"mitigation"`
}

// HarvestTimeline schedules the harvest window.
type HarvestTimeline struct {
	ExpectedHarvestDate  string   `json:"expectedHarvestDate"`
	HarvestWindow        string   `json:"harvestWindow"`
	PreHarvestActivities []string `json:"preHarvestActivities,omitempty"`
}

// RegionalComparison relates the prediction to regional averages.
type RegionalComparison struct {
	RegionalAverage      float64 `json:"regionalAverage"`
	PercentageDifference float64 `json:"percentageDifference"`
	Notes                string  `json:"notes,omitempty"`
}

// YieldPrediction is the structured result of a yield forecast.
type YieldPrediction struct {
	PredictedYield            PredictedYield      `json:"predictedYield"`
	ConfidenceInterval        ConfidenceInterval  `json:"confidenceInterval"`
	YieldRating               string              `json:"yieldRating"`
	MarketEstimate            *MarketEstimate     `json:"marketEstimate,omitempty"`
	YieldOptimizationTips     []OptimizationTip   `json:"yieldOptimizationTips"`
	RiskFactors               []RiskFactor        `json:"riskFactors"`
	HarvestTimeline           *HarvestTimeline    `json:"harvestTimeline,omitempty"`
	RegionalComparison        *RegionalComparison `json:"comparisonWithRegionalAverage,omitempty"`
	AdditionalRecommendations string              `json:"additionalRecommendations,omitempty"`
}
