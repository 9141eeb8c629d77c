package csvcodec

// Manifest is the fixed, ordered set of columns an import file header must
// contain. Structured comparison and win/loss columns are maintained through
// the form only and are not part of the file format.
var Manifest = []string{
	"company_name",
	"threat_level",
	"website",
	"one_line_summary",
	"overall_market_position",
	"parent_company",
	"headquarters",
	"year_founded",
	"years_in_market",
	"publicly_listed",
	"employee_count",
	"annual_revenue",
	"mergers_acquisitions",
	"strategic_alliances",
	"major_news_litigation",
	"analyst_recognition",
	"product_portfolio_overview",
	"core_offerings",
	"augmenting_tools",
	"marquee_customers",
	"strongest_verticals",
	"strongest_regions",
	"ideal_customer_profile",
	"sales_model",
	"sales_team_focus",
	"partner_ecosystem",
	"primary_value_proposition",
	"positioning_statement",
	"positioning_with_ai",
	"key_messaging_themes",
	"guarantees_bold_claims",
	"primary_target_audience",
	"target_audience_relevance",
	"promoted_assets",
	"content_themes",
	"social_media_platforms",
	"social_media_content_strategy",
	"social_media_engagement",
	"paid_marketing_countries",
	"paid_marketing_focus",
	"seo_performance",
	"ranking_performance",
	"flagship_events",
	"event_types_themes",
	"cloud_vs_onpremise",
	"hosting",
	"tech_stack",
	"proprietary_language",
	"architecture_notes",
	"ui_ux_notes",
	"workflow_rule_engine",
	"extensibility_customization",
	"ai_ml_capabilities",
	"data_integration",
	"governance_security",
	"development_lifecycle",
	"who_builds_on_platform",
	"learning_curve",
	"implementation_model",
	"training_community",
	"pricing_model",
	"licensing_complexity",
	"what_customers_love",
	"what_customers_complain_about",
	"summary_of_reviews",
	"how_competitors_view_them",
	"market_insider_notes",
	"customers_using_alongside_kissflow",
	"customers_who_replaced_them",
	"kissflow_positioning_strategy",
	"key_talking_points",
	"conversations_we_can_win",
	"coexistence_strategy",
}

// SampleRow is the example data line shipped in the downloadable template. It
// is aligned with Manifest.
var SampleRow = []string{
	"TechCorp Solutions",
	"High",
	"https://techcorp.com",
	"Leading enterprise software provider with strong market presence",
	"Leader",
	"TechCorp Holdings",
	"San Francisco, CA",
	"2010",
	"14",
	"true",
	"5000+",
	"$500M",
	"Acquired DataFlow Inc in 2022 for $100M",
	"Partnership with Microsoft, AWS",
	"Patent litigation with CompetitorX settled in 2023",
	"Gartner Leader in Magic Quadrant 2024",
	"Comprehensive suite of business management tools",
	"Workflow automation, Process management, Analytics",
	"Third-party integrations, Mobile apps",
	"Fortune 500 Company A|Enterprise Corp B|Global Tech C",
	"Manufacturing|Healthcare|Financial Services",
	"North America|Europe|Asia Pacific",
	"Large enterprises (1000+ employees) in regulated industries",
	"Direct sales with channel partners",
	"Enterprise accounts, Strategic partnerships",
	"Microsoft, Salesforce, AWS partnerships",
	"Streamline your business processes with AI-powered automation",
	"The leading platform for enterprise process automation",
	"AI-first approach to business process optimization",
	"Digital Transformation|Process Excellence|AI Innovation",
	"99.9% uptime guarantee, ROI within 6 months",
	"CIOs, IT Directors, Process Owners",
	"Addresses digital transformation initiatives",
	"Whitepapers, Case studies, Webinars",
	"Thought Leadership|Customer Success|Industry Insights",
	`{"linkedin": {"followers": "50000", "strategy": "B2B content"}}`,
	"B2B focused content, thought leadership articles",
	"High engagement on LinkedIn, moderate on Twitter",
	"United States|United Kingdom|Germany|Australia",
	"Google Ads, LinkedIn Ads, industry publications",
	"High domain authority, ranks for key industry terms",
	"Top 3 for enterprise workflow automation",
	"TechCorp Summit|Process Excellence Conference",
	"Enterprise conferences, user training events",
	"Cloud-first with on-premise options",
	"AWS, Azure multi-cloud deployment",
	"React, Node.js, PostgreSQL, Kubernetes",
	"TechCorp Workflow Language (TWL)",
	"Microservices architecture, API-first design",
	"Modern, intuitive interface with drag-drop builder",
	"Advanced workflow engine with conditional logic",
	"Custom fields, API integrations, white-labeling",
	"Machine learning for process optimization",
	"REST APIs, webhooks, 500+ pre-built connectors",
	"SOC2, GDPR compliant, enterprise security",
	"Agile development, quarterly releases",
	"IT teams, business analysts, citizen developers",
	"Moderate - requires some technical knowledge",
	"Professional services, self-service options",
	"Comprehensive documentation, active community",
	"Subscription-based, per-user pricing",
	"Complex enterprise licensing with multiple tiers",
	"Powerful features, reliable platform, good support",
	"Steep learning curve, expensive for small teams",
	"Users praise reliability but note complexity",
	"Seen as established but less innovative",
	"Internal insights on competitive positioning",
	"Customer A|Customer B|Customer C",
	"Former TechCorp Customer D|Enterprise E",
	"Position as more user-friendly alternative",
	"Emphasize ease of use and faster implementation",
	"SMB market|User experience|Implementation speed",
	"Partner in enterprise accounts, compete in mid-market",
}

// TemplateFilename is the suggested download name for Template.
const TemplateFilename = "battlecard_template.csv"

// Template renders the downloadable sample file.
func Template() string {
	return Serialize(Manifest, [][]string{SampleRow})
}
