package entity

import "strings"

// FieldKind describes how an attribute is flattened into a single text column.
type FieldKind int

const (
	KindText FieldKind = iota
	KindFlag
	KindList
	KindStructured
)

// Field maps one stored column to its Battlecard attribute.
type Field struct {
	Column string
	Kind   FieldKind

	text   func(*Battlecard) *string
	flag   func(*Battlecard) *bool
	list   func(*Battlecard) *[]string
	encode func(*Battlecard) string
	decode func(*Battlecard, string)
}

// Flat returns the attribute's flat text form. Lists are pipe-joined,
// structured attributes are JSON and flags are "true" or "false".
func (f Field) Flat(b *Battlecard) string {
	switch f.Kind {
	case KindText:
		return *f.text(b)
	case KindFlag:
		if *f.flag(b) {
			return "true"
		}
		return "false"
	case KindList:
		return JoinList(*f.list(b))
	default:
		return f.encode(b)
	}
}

// StoredValue is Flat adapted for SQL parameters: empty text attributes are
// stored as NULL.
func (f Field) StoredValue(b *Battlecard) any {
	value := f.Flat(b)
	if f.Kind == KindText && strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

// SetFlat assigns the attribute from its flat text form. Structured text that
// cannot be decoded leaves an empty value.
func (f Field) SetFlat(b *Battlecard, value string) {
	switch f.Kind {
	case KindText:
		*f.text(b) = value
	case KindFlag:
		*f.flag(b) = ParseFlag(value)
	case KindList:
		*f.list(b) = SplitList(value)
	default:
		f.decode(b, value)
	}
}

func textField(column string, get func(*Battlecard) *string) Field {
	return Field{Column: column, Kind: KindText, text: get}
}

func listField(column string, get func(*Battlecard) *[]string) Field {
	return Field{Column: column, Kind: KindList, list: get}
}

func structuredField(column string, encode func(*Battlecard) string, decode func(*Battlecard, string)) Field {
	return Field{Column: column, Kind: KindStructured, encode: encode, decode: decode}
}

// Fields is the ordered column table shared by storage backends and the CSV
// converter. It excludes id and the timestamps.
var Fields = []Field{
	textField("company_name", func(b *Battlecard) *string { return &b.CompanyName }),
	textField("threat_level", func(b *Battlecard) *string { return &b.ThreatLevel }),
	textField("website", func(b *Battlecard) *string { return &b.Website }),
	textField("one_line_summary", func(b *Battlecard) *string { return &b.OneLineSummary }),

	textField("overall_market_position", func(b *Battlecard) *string { return &b.OverallMarketPosition }),
	textField("parent_company", func(b *Battlecard) *string { return &b.ParentCompany }),
	textField("headquarters", func(b *Battlecard) *string { return &b.Headquarters }),
	textField("year_founded", func(b *Battlecard) *string { return &b.YearFounded }),
	textField("years_in_market", func(b *Battlecard) *string { return &b.YearsInMarket }),
	{Column: "publicly_listed", Kind: KindFlag, flag: func(b *Battlecard) *bool { return &b.PubliclyListed }},
	textField("employee_count", func(b *Battlecard) *string { return &b.EmployeeCount }),
	textField("annual_revenue", func(b *Battlecard) *string { return &b.AnnualRevenue }),
	textField("mergers_acquisitions", func(b *Battlecard) *string { return &b.MergersAcquisitions }),
	textField("strategic_alliances", func(b *Battlecard) *string { return &b.StrategicAlliances }),
	textField("major_news_litigation", func(b *Battlecard) *string { return &b.MajorNewsLitigation }),
	textField("analyst_recognition", func(b *Battlecard) *string { return &b.AnalystRecognition }),

	textField("product_portfolio_overview", func(b *Battlecard) *string { return &b.ProductPortfolioOverview }),
	textField("core_offerings", func(b *Battlecard) *string { return &b.CoreOfferings }),
	textField("augmenting_tools", func(b *Battlecard) *string { return &b.AugmentingTools }),
	listField("marquee_customers", func(b *Battlecard) *[]string { return &b.MarqueeCustomers }),
	listField("strongest_verticals", func(b *Battlecard) *[]string { return &b.StrongestVerticals }),
	listField("strongest_regions", func(b *Battlecard) *[]string { return &b.StrongestRegions }),

	textField("ideal_customer_profile", func(b *Battlecard) *string { return &b.IdealCustomerProfile }),
	textField("sales_model", func(b *Battlecard) *string { return &b.SalesModel }),
	textField("sales_team_focus", func(b *Battlecard) *string { return &b.SalesTeamFocus }),
	textField("partner_ecosystem", func(b *Battlecard) *string { return &b.PartnerEcosystem }),
	textField("primary_value_proposition", func(b *Battlecard) *string { return &b.PrimaryValueProposition }),
	textField("positioning_statement", func(b *Battlecard) *string { return &b.PositioningStatement }),
	textField("positioning_with_ai", func(b *Battlecard) *string { return &b.PositioningWithAI }),
	listField("key_messaging_themes", func(b *Battlecard) *[]string { return &b.KeyMessagingThemes }),
	textField("guarantees_bold_claims", func(b *Battlecard) *string { return &b.GuaranteesBoldClaims }),
	textField("primary_target_audience", func(b *Battlecard) *string { return &b.PrimaryTargetAudience }),
	textField("target_audience_relevance", func(b *Battlecard) *string { return &b.TargetAudienceRelevance }),

	textField("promoted_assets", func(b *Battlecard) *string { return &b.PromotedAssets }),
	listField("content_themes", func(b *Battlecard) *[]string { return &b.ContentThemes }),
	structuredField("social_media_platforms",
		func(b *Battlecard) string { return encodeJSON(orEmptyMap(b.SocialMediaPlatforms), "{}") },
		func(b *Battlecard, text string) { b.SocialMediaPlatforms = decodeSocialPlatforms(text) }),
	textField("social_media_content_strategy", func(b *Battlecard) *string { return &b.SocialMediaContentStrategy }),
	textField("social_media_engagement", func(b *Battlecard) *string { return &b.SocialMediaEngagement }),
	listField("paid_marketing_countries", func(b *Battlecard) *[]string { return &b.PaidMarketingCountries }),
	textField("paid_marketing_focus", func(b *Battlecard) *string { return &b.PaidMarketingFocus }),
	textField("seo_performance", func(b *Battlecard) *string { return &b.SEOPerformance }),
	textField("ranking_performance", func(b *Battlecard) *string { return &b.RankingPerformance }),

	listField("flagship_events", func(b *Battlecard) *[]string { return &b.FlagshipEvents }),
	textField("event_types_themes", func(b *Battlecard) *string { return &b.EventTypesThemes }),

	textField("cloud_vs_onpremise", func(b *Battlecard) *string { return &b.CloudVsOnPremise }),
	textField("hosting", func(b *Battlecard) *string { return &b.Hosting }),
	textField("tech_stack", func(b *Battlecard) *string { return &b.TechStack }),
	textField("proprietary_language", func(b *Battlecard) *string { return &b.ProprietaryLanguage }),
	textField("architecture_notes", func(b *Battlecard) *string { return &b.ArchitectureNotes }),
	textField("ui_ux_notes", func(b *Battlecard) *string { return &b.UIUXNotes }),
	textField("workflow_rule_engine", func(b *Battlecard) *string { return &b.WorkflowRuleEngine }),
	textField("extensibility_customization", func(b *Battlecard) *string { return &b.ExtensibilityCustomization }),
	textField("ai_ml_capabilities", func(b *Battlecard) *string { return &b.AIMLCapabilities }),
	textField("data_integration", func(b *Battlecard) *string { return &b.DataIntegration }),
	textField("governance_security", func(b *Battlecard) *string { return &b.GovernanceSecurity }),
	textField("development_lifecycle", func(b *Battlecard) *string { return &b.DevelopmentLifecycle }),
	textField("who_builds_on_platform", func(b *Battlecard) *string { return &b.WhoBuildsOnPlatform }),
	textField("learning_curve", func(b *Battlecard) *string { return &b.LearningCurve }),
	textField("implementation_model", func(b *Battlecard) *string { return &b.ImplementationModel }),
	textField("training_community", func(b *Battlecard) *string { return &b.TrainingCommunity }),

	structuredField("feature_comparison",
		func(b *Battlecard) string { return encodeJSON(orEmptyMap(b.FeatureComparison), "{}") },
		func(b *Battlecard, text string) { b.FeatureComparison = decodeFeatureComparison(text) }),
	textField("pricing_model", func(b *Battlecard) *string { return &b.PricingModel }),
	structuredField("pricing_tiers",
		func(b *Battlecard) string { return encodeJSON(orEmptyMap(b.PricingTiers), "{}") },
		func(b *Battlecard, text string) { b.PricingTiers = decodePricingTiers(text) }),
	textField("licensing_complexity", func(b *Battlecard) *string { return &b.LicensingComplexity }),
	textField("what_customers_love", func(b *Battlecard) *string { return &b.WhatCustomersLove }),
	textField("what_customers_complain_about", func(b *Battlecard) *string { return &b.WhatCustomersComplainAbout }),
	textField("summary_of_reviews", func(b *Battlecard) *string { return &b.SummaryOfReviews }),
	textField("how_competitors_view_them", func(b *Battlecard) *string { return &b.HowCompetitorsViewThem }),

	structuredField("deals_we_won",
		func(b *Battlecard) string { return encodeJSON(orEmptySlice(b.DealsWeWon), "[]") },
		func(b *Battlecard, text string) { b.DealsWeWon = decodeDeals(text) }),
	structuredField("deals_we_lost",
		func(b *Battlecard) string { return encodeJSON(orEmptySlice(b.DealsWeLost), "[]") },
		func(b *Battlecard, text string) { b.DealsWeLost = decodeDeals(text) }),
	textField("market_insider_notes", func(b *Battlecard) *string { return &b.MarketInsiderNotes }),
	listField("customers_using_alongside_kissflow", func(b *Battlecard) *[]string { return &b.CustomersUsingAlongside }),
	listField("customers_who_replaced_them", func(b *Battlecard) *[]string { return &b.CustomersWhoReplacedThem }),

	textField("kissflow_positioning_strategy", func(b *Battlecard) *string { return &b.OurPositioningStrategy }),
	textField("key_talking_points", func(b *Battlecard) *string { return &b.KeyTalkingPoints }),
	listField("conversations_we_can_win", func(b *Battlecard) *[]string { return &b.ConversationsWeCanWin }),
	textField("coexistence_strategy", func(b *Battlecard) *string { return &b.CoexistenceStrategy }),
	structuredField("pricing_comparison",
		func(b *Battlecard) string { return encodeJSON(orEmptyMap(b.PricingComparison), "{}") },
		func(b *Battlecard, text string) { b.PricingComparison = decodePricingComparison(text) }),
}

var fieldsByColumn = func() map[string]Field {
	index := make(map[string]Field, len(Fields))
	for _, f := range Fields {
		index[f.Column] = f
	}
	return index
}()

// FieldByColumn looks up the field stored under column.
func FieldByColumn(column string) (Field, bool) {
	f, ok := fieldsByColumn[column]
	return f, ok
}

// Columns returns the stored column names in table order.
func Columns() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = f.Column
	}
	return out
}

func orEmptyMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return m
}

func orEmptySlice[V any](s []V) []V {
	if s == nil {
		return []V{}
	}
	return s
}
