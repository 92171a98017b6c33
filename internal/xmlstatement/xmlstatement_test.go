package xmlstatement

import (
	"strings"
	"testing"

	"fjacquet/statement-import/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	xml := `<export><transactions>
		<transaction>
			<date>2024-02-01</date>
			<description>Coffee</description>
			<amount>-4.50</amount>
		</transaction>
		<transaction>
			<date>2024-02-02</date>
			<description>Salary</description>
			<amount>3000.00</amount>
			<category>Wages</category>
		</transaction>
	</transactions></export>`

	headers, rows, err := Parse(strings.NewReader(xml))
	require.NoError(t, err)

	assert.Equal(t, models.CanonicalHeaders, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "Coffee", rows[0].Get("Description"))
	assert.Equal(t, "", rows[0].Get("Category"))
	assert.Equal(t, "Wages", rows[1].Get("Category"))
}

func TestParseNoTransactions(t *testing.T) {
	_, rows, err := Parse(strings.NewReader("<export></export>"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseInvalidXML(t *testing.T) {
	_, _, err := Parse(strings.NewReader("<export><unclosed"))
	assert.Error(t, err)
}
