package property

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"reflect"
	"testing"
	"time"
	"unsafe"
)

type (
	Audit struct {
		Created time.Time `mapping:"dateFormat=yyyy-MM-dd"`
		Name    string
	}

	Account struct {
		Audit
		ID       int    `json:"id"`
		Name     string `mapping:"name=accountName"`
		Secret   string `mapping:"-"`
		Internal string
		balance  float64
	}
)

func TestDiscoverer_Properties(t *testing.T) {
	var testCases = []struct {
		description string
		options     []Option
		expect      []string
	}{
		{
			description: "default",
			options:     []Option{WithFallbackTags("json")},
			expect:      []string{"ID", "Name", "Internal", "Created"},
		},
		{
			description: "unexported",
			options:     []Option{WithUnexported(true)},
			expect:      []string{"ID", "Name", "Internal", "balance", "Created"},
		},
		{
			description: "ignore pattern",
			options:     []Option{WithIgnore("^Int.+$")},
			expect:      []string{"ID", "Name", "Created"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			discoverer, err := New(testCase.options...)
			require.NoError(t, err)
			props, err := discoverer.Properties(reflect.TypeOf(&Account{}))
			require.NoError(t, err)
			var names []string
			for _, prop := range props.Items {
				names = append(names, prop.Name)
			}
			assert.Equal(t, testCase.expect, names)
			cached, err := discoverer.Properties(reflect.TypeOf(Account{}))
			require.NoError(t, err)
			assert.Same(t, props, cached)
			assert.Equal(t, len(testCase.expect), cached.Len())
		})
	}
}

func TestDiscoverer_Lookup(t *testing.T) {
	discoverer, err := New(WithFallbackTags("json"))
	require.NoError(t, err)
	props, err := discoverer.Properties(reflect.TypeOf(Account{}))
	require.NoError(t, err)

	prop := props.Lookup(discoverer.Key("account_name"))
	require.NotNil(t, prop)
	assert.Equal(t, "Name", prop.Name)
	assert.Equal(t, reflect.TypeOf(Account{}), prop.Owner)

	created := props.Lookup(discoverer.Key("CREATED"))
	require.NotNil(t, created)
	assert.Equal(t, reflect.TypeOf(Audit{}), created.Owner)
	assert.Equal(t, "2006-01-02", created.Tag.TimeLayout)

	assert.NotNil(t, props.Lookup(discoverer.Key("id")))
	assert.Nil(t, props.Lookup(discoverer.Key("secret")))
	scalar, err := discoverer.Properties(reflect.TypeOf(1))
	assert.NoError(t, err)
	assert.Nil(t, scalar)

	_, err = New(WithIgnore("("))
	assert.Error(t, err)
}

func TestProperty_Access(t *testing.T) {
	discoverer, err := New(WithUnexported(true))
	require.NoError(t, err)
	props, err := discoverer.Properties(reflect.TypeOf(Account{}))
	require.NoError(t, err)
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	account := Account{ID: 3, balance: 1.5}
	account.Audit.Created = ts
	value, ptr := Addressable(account)
	assert.IsType(t, &Account{}, value)

	assert.Equal(t, 3, props.Lookup(discoverer.Key("ID")).Value(ptr))
	assert.Equal(t, 1.5, props.Lookup(discoverer.Key("balance")).Value(ptr))
	assert.Equal(t, ts, props.Lookup(discoverer.Key("created")).Value(ptr))

	target := &Account{}
	targetPtr := unsafe.Pointer(target)
	props.Lookup(discoverer.Key("created")).Set(targetPtr, reflect.ValueOf(ts))
	props.Lookup(discoverer.Key("balance")).Set(targetPtr, reflect.ValueOf(2.5))
	assert.Equal(t, ts, target.Created)
	assert.Equal(t, 2.5, target.balance)
}

func TestDiscoverer_InvalidTag(t *testing.T) {
	type Contact struct {
		Name string `mapping:"nmae=foo"`
		Age  int
	}
	discoverer, err := New()
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		props, err := discoverer.Properties(reflect.TypeOf(Contact{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Contact.Name")
		assert.Nil(t, props.Lookup(discoverer.Key("name")))
	}
}
