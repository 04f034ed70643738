package model

// Intent is the category a user message is classified into
type Intent string

const (
	IntentGreeting          Intent = "greeting"
	IntentThanks            Intent = "thanks"
	IntentPlantingInquiry   Intent = "planting_inquiry"
	IntentSoilInquiry       Intent = "soil_inquiry"
	IntentDiseaseInquiry    Intent = "disease_inquiry"
	IntentWeatherInquiry    Intent = "weather_inquiry"
	IntentPestInquiry       Intent = "pest_inquiry"
	IntentIrrigationInquiry Intent = "irrigation_inquiry"
	IntentSoilImprovement   Intent = "soil_improvement"
	IntentHarvestInquiry    Intent = "harvest_inquiry"
	IntentUnknown           Intent = "unknown"
)

// Valid reports whether the intent belongs to the closed set above
func (i Intent) Valid() bool {
	switch i {
	case IntentGreeting, IntentThanks, IntentPlantingInquiry, IntentSoilInquiry,
		IntentDiseaseInquiry, IntentWeatherInquiry, IntentPestInquiry,
		IntentIrrigationInquiry, IntentSoilImprovement, IntentHarvestInquiry,
		IntentUnknown:
		return true
	}
	return false
}

// Tone is the urgency/politeness signal of a message
type Tone string

const (
	ToneUrgent  Tone = "urgent"
	TonePolite  Tone = "polite"
	ToneNeutral Tone = "neutral"
)

// ExtractedContext holds the entities pulled out of a single message.
// Nil pointers mean "none found".
type ExtractedContext struct {
	Crop      *string `json:"crop,omitempty"`
	City      *string `json:"city,omitempty"`
	SoilType  *string `json:"soil_type,omitempty"`
	Quantity  *int    `json:"quantity,omitempty"`
	Tone      Tone    `json:"tone"`
	PriorCrop *string `json:"prior_crop,omitempty"` // crop of the previous user message
}
