package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStringCSV(t *testing.T) {
	input := "name,dept,salary\nAvery,eng,98000\nBlake,sales,61000\n"

	c, err := LoadString(input)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "dept", "salary"}, c.Fields)
	require.Len(t, c.Records, 2)
	assert.Equal(t, "Avery", c.Records[0].FieldString("name"))
	assert.Equal(t, "61000", c.Records[1].FieldString("salary"))
}

func TestLoadStringTSV(t *testing.T) {
	input := "name\tdept\nAvery\teng\n"

	c, err := LoadString(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "dept"}, c.Fields)
	require.Len(t, c.Records, 1)
	assert.Equal(t, "eng", c.Records[0].FieldString("dept"))
}

func TestLoadCSVQuotedCells(t *testing.T) {
	input := "name,notes\n\"Smith, Jordan\",\"likes csv\"\n"

	c, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, c.Records, 1)
	assert.Equal(t, "Smith, Jordan", c.Records[0].FieldString("name"))
}

func TestLoadCSVShortRow(t *testing.T) {
	input := "a,b,c\n1,2\n"

	c, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, c.Records, 1)
	assert.Equal(t, "", c.Records[0].FieldString("c"))
}

func TestLoadStringJSONArray(t *testing.T) {
	input := `[{"name":"Avery","age":31},{"name":"Blake","age":28}]`

	c, err := LoadString(input)
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "name"}, c.Fields)
	require.Len(t, c.Records, 2)
	assert.Equal(t, "31", c.Records[0].FieldString("age"))
}

func TestLoadStringSingleJSONObject(t *testing.T) {
	c, err := LoadString(`{"name":"Avery"}`)
	require.NoError(t, err)
	require.Len(t, c.Records, 1)
}

func TestLoadStringNDJSON(t *testing.T) {
	input := "{\"id\": 1}\n{\"id\": 2}\n{\"id\": 3}"

	c, err := LoadString(input)
	require.NoError(t, err)
	require.Len(t, c.Records, 3)
	assert.Equal(t, "2", c.Records[1].FieldString("id"))
}

func TestLoadStringYAMLSequence(t *testing.T) {
	input := "- name: Avery\n  dept: eng\n- name: Blake\n  dept: sales\n"

	c, err := LoadString(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"dept", "name"}, c.Fields)
	require.Len(t, c.Records, 2)
}

func TestLoadStringMultiDocYAML(t *testing.T) {
	input := "---\nname: Avery\n---\nname: Blake\n"

	c, err := LoadString(input)
	require.NoError(t, err)
	require.Len(t, c.Records, 2)
	assert.Equal(t, "Blake", c.Records[1].FieldString("name"))
}

func TestLoadStringTOMLArrayOfTables(t *testing.T) {
	input := "[[records]]\nname = \"Avery\"\n\n[[records]]\nname = \"Blake\"\n"

	c, err := LoadString(input)
	require.NoError(t, err)
	require.Len(t, c.Records, 2)
	assert.Equal(t, "Avery", c.Records[0].FieldString("name"))
}

func TestLoadStringErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: "   "},
		{name: "malformed JSON", input: `[{"name": }]`},
		{name: "array of scalars", input: `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadString(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/records.csv")
	assert.Error(t, err)
}

func TestLoadReader(t *testing.T) {
	c, err := LoadReader(strings.NewReader("k,v\na,1\n"))
	require.NoError(t, err)
	require.Len(t, c.Records, 1)
	assert.Equal(t, "a", c.Records[0].FieldString("k"))
}
