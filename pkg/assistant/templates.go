package assistant

// SystemPrompt frames every analyst request.
const SystemPrompt = "You are a professional stock analyst. Answer in plain text without markdown. Be professional and informative."

// DefaultAnalystTemplate is used when no template file is configured.
const DefaultAnalystTemplate = `The user is asking about {{ .Symbol }}.

Current stock information:
- Symbol: {{ .Symbol }}
- Name: {{ orNA .Name }}
- Current Price: {{ orNA .Price }}
- Market Cap: {{ orNA .MarketCap }}
- P/E Ratio: {{ orNA .PERatio }}
- 52 Week High: {{ orNA .High52Week }}
- Volume: {{ orNA .Volume }}

User question: {{ .Message }}

Please provide a comprehensive analysis based on the current data and general market knowledge.
`

// DefaultInsightTemplate summarises the most recent cached bars.
const DefaultInsightTemplate = `Analyze the recent stock performance for {{ .Symbol }} based on this data:
{{ range .Bars }}
Date: {{ .Date }}, Open: {{ fixed2 .Open }}, High: {{ fixed2 .High }}, Low: {{ fixed2 .Low }}, Close: {{ fixed2 .Close }}, Volume: {{ .Volume }}{{ end }}

Provide a brief technical analysis and outlook.
`
