package extractor

const searchSystemPrompt = "You are an intelligent car search assistant that converts natural language descriptions into structured search filters."

const searchPromptTemplate = `Your task is to extract car preferences from a natural language description and convert them into a structured JSON object suitable for a car listing search.

Be as precise as possible in interpreting the user's request. If a specific detail is not mentioned, omit the field from the output JSON entirely. For features, try to list specific keywords.

Only populate the numeric fields (minYear, maxYear, minPrice, maxPrice, minMileage, maxMileage) when the description states an explicit numeric value. Never convert vague qualifiers like "low mileage" or "affordable" into a guessed number; leave the field out and record the qualifier as a feature keyword instead. Multi-valued fields (make, model, bodyType, fuelType, color, features) must collect every distinct value mentioned, not just the first.

The output object may contain only these fields:
- make: array of strings, desired car makes
- model: array of strings, desired car models
- minYear, maxYear: numbers, manufacturing year bounds
- minPrice, maxPrice: numbers, price bounds in USD
- bodyType: array of strings, e.g. SUV, Sedan, Truck
- features: array of strings, e.g. "good mileage", "leather seats"
- minMileage, maxMileage: numbers, mileage bounds in miles
- color: array of strings
- fuelType: array of strings, e.g. Gasoline, Electric, Hybrid

Natural Language Description: %s

IMPORTANT: Your response MUST be a valid JSON object and nothing else. Do not include any explanations or text outside of the JSON.`

// filterSchema declares the search-filter output shape. Every field is
// optional; a violation of the declared types counts as "no structured
// output".
const filterSchema = `{
	"type": "object",
	"properties": {
		"make": {"type": "array", "items": {"type": "string"}},
		"model": {"type": "array", "items": {"type": "string"}},
		"minYear": {"type": "number"},
		"maxYear": {"type": "number"},
		"minPrice": {"type": "number"},
		"maxPrice": {"type": "number"},
		"bodyType": {"type": "array", "items": {"type": "string"}},
		"features": {"type": "array", "items": {"type": "string"}},
		"minMileage": {"type": "number"},
		"maxMileage": {"type": "number"},
		"color": {"type": "array", "items": {"type": "string"}},
		"fuelType": {"type": "array", "items": {"type": "string"}}
	},
	"additionalProperties": false
}`

const listingSystemPrompt = "You are an expert car sales assistant that extracts listing details from free-form seller descriptions."

const listingPromptTemplate = `Your task is to extract key details from a free-form car description and then generate a compelling, marketing-oriented listing description.

Follow these rules:
- Extract all available information accurately.
- For 'year', 'mileage', and 'price', if the information is not explicitly provided as a numerical value, output null. Do not guess.
- For 'condition', synthesize a concise summary of the car's state.
- For 'features', list distinct selling points or notable attributes.
- The 'listingDescription' should be persuasive, highlighting the car's best attributes based on the extracted details. It should be suitable for a public car listing.

Return a JSON object with exactly these fields: make (string), model (string), year (number or null), mileage (number or null), condition (string), color (string or null), features (array of strings), price (number or null), listingDescription (string).

Free-form Car Description:
%s

IMPORTANT: Your response MUST be a valid JSON object and nothing else. Do not include any explanations or text outside of the JSON.`

const listingSchema = `{
	"type": "object",
	"properties": {
		"make": {"type": "string"},
		"model": {"type": "string"},
		"year": {"type": ["number", "null"]},
		"mileage": {"type": ["number", "null"]},
		"condition": {"type": "string"},
		"color": {"type": ["string", "null"]},
		"features": {"type": "array", "items": {"type": "string"}},
		"price": {"type": ["number", "null"]},
		"listingDescription": {"type": "string"}
	},
	"required": ["make", "model", "condition", "features", "listingDescription"]
}`
