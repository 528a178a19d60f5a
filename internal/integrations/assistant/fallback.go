package assistant

import "strings"

// fallbackReply picks a canned answer by keyword when the remote assistant
// is unavailable.
func fallbackReply(message string) Reply {
	lower := strings.ToLower(message)

	var text string
	switch {
	case strings.Contains(lower, "esg") || strings.Contains(lower, "environmental") ||
		strings.Contains(lower, "social") || strings.Contains(lower, "governance"):
		text = "ESG stands for Environmental, Social, and Governance factors that measure a company's sustainability and ethical impact. " +
			"Environmental factors include carbon emissions, renewable energy use, waste management, and resource efficiency. " +
			"Social factors cover employee welfare, diversity, community engagement, and supply chain ethics. " +
			"Governance factors involve board structure, transparency, anti-corruption measures, and shareholder rights. " +
			"Improving your ESG score can help you qualify for better loan rates on GreenCred."
	case strings.Contains(lower, "sustainable finance") || strings.Contains(lower, "green loan"):
		text = "Sustainable finance refers to financial services that consider environmental, social, and governance factors in investment and lending decisions. " +
			"Benefits include lower interest rates for environmentally responsible businesses, access to green funding sources, and long-term business resilience. " +
			"GreenCred offers ESG-based credit scoring that can provide up to 3% interest rate discounts for companies with strong sustainability practices."
	case strings.Contains(lower, "improve") && (strings.Contains(lower, "score") || strings.Contains(lower, "rating")):
		text = "Key ways to improve your ESG score: reduce carbon emissions through energy efficiency and renewable energy; " +
			"promote diversity, fair labor practices and community engagement; " +
			"establish transparent reporting, strong anti-corruption policies and board independence."
	default:
		text = "I can help with ESG and sustainable finance questions for GreenCred users: understanding ESG principles, " +
			"improving your sustainability score, sustainable finance concepts, and platform features. " +
			"What would you like to learn about?"
	}

	return Reply{Text: text, Fallback: true}
}
