package csvcodec

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/battlecards/internal/entity"
)

func headerLine(columns []string) string {
	return strings.Join(columns, ",")
}

func blankRow(values map[string]string) string {
	out := make([]string, len(Manifest))
	for i, column := range Manifest {
		out[i] = values[column]
	}
	return Serialize(Manifest, [][]string{out})
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"trims unquoted", "  a , b ,c  ", []string{"a", "b", "c"}},
		{"comma inside quotes", `"Acme, Inc",x`, []string{"Acme, Inc", "x"}},
		{"escaped quote", `"Acme ""Best"" Corp",y`, []string{`Acme "Best" Corp`, "y"}},
		{"quoted whitespace kept", `  "  padded  "  ,z`, []string{"  padded  ", "z"}},
		{"empty fields", ",,", []string{"", "", ""}},
		{"empty quoted", `"",""`, []string{"", ""}},
		{"unterminated quote", `"open, field`, []string{"open, field"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLine(tt.line))
		})
	}
}

func TestParseAcceptsAnyHeaderOrder(t *testing.T) {
	shuffled := append([]string(nil), Manifest...)
	rnd := rand.New(rand.NewSource(7))
	rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	values := make([]string, len(shuffled))
	for i, column := range shuffled {
		values[i] = "v-" + column
	}
	text := Serialize(shuffled, [][]string{values})

	rows, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	for _, column := range Manifest {
		assert.Equal(t, "v-"+column, rows[0][column])
	}
}

func TestParseReportsHeaderMismatch(t *testing.T) {
	columns := append([]string(nil), Manifest[1:]...)
	columns = append(columns, "favourite_color")

	_, err := Parse(headerLine(columns) + "\n")

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, []string{"company_name"}, formatErr.Missing)
	assert.Equal(t, []string{"favourite_color"}, formatErr.Unexpected)
	assert.Contains(t, err.Error(), "company_name")
	assert.Contains(t, err.Error(), "favourite_color")
}

func TestParseEmptyFile(t *testing.T) {
	for _, text := range []string{"", "\n\n", "  \r\n"} {
		_, err := Parse(text)
		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr), "%q", text)
		assert.Equal(t, "csv file is empty", err.Error())
	}
}

func TestParseHeaderOnly(t *testing.T) {
	rows, err := Parse(headerLine(Manifest))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseSkipsMismatchedAndBlankLines(t *testing.T) {
	good := blankRow(map[string]string{"company_name": "Acme"})
	goodLine := strings.SplitN(good, "\n", 2)[1]

	text := "\uFEFF" + headerLine(Manifest) + "\r\n" +
		goodLine + "\r\n" +
		"\n" +
		"only,three,fields\n" +
		strings.Replace(goodLine, "Acme", "Globex", 1) + "\n"

	rows, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[0]["company_name"])
	assert.Equal(t, "Globex", rows[1]["company_name"])
}

func TestTemplateRoundTrip(t *testing.T) {
	rows, err := Parse(Template())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	for i, column := range Manifest {
		assert.Equal(t, SampleRow[i], rows[0][column], column)
	}
}

func TestSerializeQuotesEveryField(t *testing.T) {
	got := Serialize([]string{"a", "b"}, [][]string{{`say "hi"`, ""}})
	assert.Equal(t, "\"a\",\"b\"\n\"say \"\"hi\"\"\",\"\"", got)
}

func TestConvert(t *testing.T) {
	rows, err := Parse(Template())
	require.NoError(t, err)

	card, err := Convert(rows[0])
	require.NoError(t, err)

	assert.Empty(t, card.ID)
	assert.Equal(t, "TechCorp Solutions", card.CompanyName)
	assert.Equal(t, "High", card.ThreatLevel)
	assert.True(t, card.PubliclyListed)
	assert.Equal(t, []string{"Manufacturing", "Healthcare", "Financial Services"}, card.StrongestVerticals)
	assert.Equal(t, entity.SocialPresence{Followers: "50000", Strategy: "B2B content"}, card.SocialMediaPlatforms["linkedin"])
	assert.NotNil(t, card.FeatureComparison)
	assert.NotNil(t, card.DealsWeWon)
}

func TestConvertToleratesBadStructuredText(t *testing.T) {
	card, err := Convert(Row{"company_name": "Acme", "social_media_platforms": "{not json", "publicly_listed": "YES"})
	require.NoError(t, err)
	assert.Empty(t, card.SocialMediaPlatforms)
	assert.NotNil(t, card.SocialMediaPlatforms)
	assert.True(t, card.PubliclyListed)
	assert.Equal(t, []string{}, card.MarqueeCustomers)
}

func TestConvertRejectsNilRow(t *testing.T) {
	_, err := Convert(nil)
	assert.Error(t, err)
}

func TestManifestColumnsAreStored(t *testing.T) {
	for _, column := range Manifest {
		_, ok := entity.FieldByColumn(column)
		assert.True(t, ok, column)
	}
	assert.Len(t, SampleRow, len(Manifest))
}
