package entity

import "time"

// SocialPresence captures a competitor's footprint on one social platform.
type SocialPresence struct {
	Followers string `json:"followers"`
	Strategy  string `json:"strategy"`
}

// FeatureComparison compares one feature between our product and the competitor's.
type FeatureComparison struct {
	Us        string `json:"us"`
	Them      string `json:"them"`
	Advantage string `json:"advantage"`
}

// PricingTier describes one of the competitor's published price points.
type PricingTier struct {
	Price    string   `json:"price"`
	Features []string `json:"features"`
}

// PricingComparison compares one pricing aspect between us and the competitor.
type PricingComparison struct {
	Ours       string `json:"kissflow"`
	Competitor string `json:"competitor"`
	Advantage  string `json:"advantage"`
}

// Deal records a won or lost opportunity against the competitor.
type Deal struct {
	Deal   string `json:"deal"`
	Reason string `json:"reason"`
	Value  string `json:"value,omitempty"`
}

// Battlecard is the competitor profile maintained by the product-marketing team.
// Text attributes are empty when unknown. List and map attributes are never nil
// once a record has been loaded (see EnsureDefaults).
type Battlecard struct {
	ID string `json:"id"`

	CompanyName    string `json:"company_name"`
	ThreatLevel    string `json:"threat_level,omitempty"`
	Website        string `json:"website,omitempty"`
	OneLineSummary string `json:"one_line_summary,omitempty"`

	OverallMarketPosition string `json:"overall_market_position,omitempty"`
	ParentCompany         string `json:"parent_company,omitempty"`
	Headquarters          string `json:"headquarters,omitempty"`
	YearFounded           string `json:"year_founded,omitempty"`
	YearsInMarket         string `json:"years_in_market,omitempty"`
	PubliclyListed        bool   `json:"publicly_listed"`
	EmployeeCount         string `json:"employee_count,omitempty"`
	AnnualRevenue         string `json:"annual_revenue,omitempty"`
	MergersAcquisitions   string `json:"mergers_acquisitions,omitempty"`
	StrategicAlliances    string `json:"strategic_alliances,omitempty"`
	MajorNewsLitigation   string `json:"major_news_litigation,omitempty"`
	AnalystRecognition    string `json:"analyst_recognition,omitempty"`

	ProductPortfolioOverview string   `json:"product_portfolio_overview,omitempty"`
	CoreOfferings            string   `json:"core_offerings,omitempty"`
	AugmentingTools          string   `json:"augmenting_tools,omitempty"`
	MarqueeCustomers         []string `json:"marquee_customers"`
	StrongestVerticals       []string `json:"strongest_verticals"`
	StrongestRegions         []string `json:"strongest_regions"`

	IdealCustomerProfile    string   `json:"ideal_customer_profile,omitempty"`
	SalesModel              string   `json:"sales_model,omitempty"`
	SalesTeamFocus          string   `json:"sales_team_focus,omitempty"`
	PartnerEcosystem        string   `json:"partner_ecosystem,omitempty"`
	PrimaryValueProposition string   `json:"primary_value_proposition,omitempty"`
	PositioningStatement    string   `json:"positioning_statement,omitempty"`
	PositioningWithAI       string   `json:"positioning_with_ai,omitempty"`
	KeyMessagingThemes      []string `json:"key_messaging_themes"`
	GuaranteesBoldClaims    string   `json:"guarantees_bold_claims,omitempty"`
	PrimaryTargetAudience   string   `json:"primary_target_audience,omitempty"`
	TargetAudienceRelevance string   `json:"target_audience_relevance,omitempty"`

	PromotedAssets             string                    `json:"promoted_assets,omitempty"`
	ContentThemes              []string                  `json:"content_themes"`
	SocialMediaPlatforms       map[string]SocialPresence `json:"social_media_platforms"`
	SocialMediaContentStrategy string                    `json:"social_media_content_strategy,omitempty"`
	SocialMediaEngagement      string                    `json:"social_media_engagement,omitempty"`
	PaidMarketingCountries     []string                  `json:"paid_marketing_countries"`
	PaidMarketingFocus         string                    `json:"paid_marketing_focus,omitempty"`
	SEOPerformance             string                    `json:"seo_performance,omitempty"`
	RankingPerformance         string                    `json:"ranking_performance,omitempty"`

	FlagshipEvents   []string `json:"flagship_events"`
	EventTypesThemes string   `json:"event_types_themes,omitempty"`

	CloudVsOnPremise           string `json:"cloud_vs_onpremise,omitempty"`
	Hosting                    string `json:"hosting,omitempty"`
	TechStack                  string `json:"tech_stack,omitempty"`
	ProprietaryLanguage        string `json:"proprietary_language,omitempty"`
	ArchitectureNotes          string `json:"architecture_notes,omitempty"`
	UIUXNotes                  string `json:"ui_ux_notes,omitempty"`
	WorkflowRuleEngine         string `json:"workflow_rule_engine,omitempty"`
	ExtensibilityCustomization string `json:"extensibility_customization,omitempty"`
	AIMLCapabilities           string `json:"ai_ml_capabilities,omitempty"`
	DataIntegration            string `json:"data_integration,omitempty"`
	GovernanceSecurity         string `json:"governance_security,omitempty"`
	DevelopmentLifecycle       string `json:"development_lifecycle,omitempty"`
	WhoBuildsOnPlatform        string `json:"who_builds_on_platform,omitempty"`
	LearningCurve              string `json:"learning_curve,omitempty"`
	ImplementationModel        string `json:"implementation_model,omitempty"`
	TrainingCommunity          string `json:"training_community,omitempty"`

	FeatureComparison          map[string]FeatureComparison `json:"feature_comparison"`
	PricingModel               string                       `json:"pricing_model,omitempty"`
	PricingTiers               map[string]PricingTier       `json:"pricing_tiers"`
	LicensingComplexity        string                       `json:"licensing_complexity,omitempty"`
	WhatCustomersLove          string                       `json:"what_customers_love,omitempty"`
	WhatCustomersComplainAbout string                       `json:"what_customers_complain_about,omitempty"`
	SummaryOfReviews           string                       `json:"summary_of_reviews,omitempty"`
	HowCompetitorsViewThem     string                       `json:"how_competitors_view_them,omitempty"`

	DealsWeWon               []Deal   `json:"deals_we_won"`
	DealsWeLost              []Deal   `json:"deals_we_lost"`
	MarketInsiderNotes       string   `json:"market_insider_notes,omitempty"`
	CustomersUsingAlongside  []string `json:"customers_using_alongside_kissflow"`
	CustomersWhoReplacedThem []string `json:"customers_who_replaced_them"`

	OurPositioningStrategy string                       `json:"kissflow_positioning_strategy,omitempty"`
	KeyTalkingPoints       string                       `json:"key_talking_points,omitempty"`
	ConversationsWeCanWin  []string                     `json:"conversations_we_can_win"`
	CoexistenceStrategy    string                       `json:"coexistence_strategy,omitempty"`
	PricingComparison      map[string]PricingComparison `json:"pricing_comparison"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// EnsureDefaults replaces nil list and map attributes with empty values.
func (b *Battlecard) EnsureDefaults() {
	for _, list := range []*[]string{
		&b.MarqueeCustomers,
		&b.StrongestVerticals,
		&b.StrongestRegions,
		&b.KeyMessagingThemes,
		&b.ContentThemes,
		&b.PaidMarketingCountries,
		&b.FlagshipEvents,
		&b.CustomersUsingAlongside,
		&b.CustomersWhoReplacedThem,
		&b.ConversationsWeCanWin,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
	if b.SocialMediaPlatforms == nil {
		b.SocialMediaPlatforms = map[string]SocialPresence{}
	}
	if b.FeatureComparison == nil {
		b.FeatureComparison = map[string]FeatureComparison{}
	}
	if b.PricingTiers == nil {
		b.PricingTiers = map[string]PricingTier{}
	}
	if b.PricingComparison == nil {
		b.PricingComparison = map[string]PricingComparison{}
	}
	if b.DealsWeWon == nil {
		b.DealsWeWon = []Deal{}
	}
	if b.DealsWeLost == nil {
		b.DealsWeLost = []Deal{}
	}
}
