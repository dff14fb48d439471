package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSportsEvent(t *testing.T) {
	t.Parallel()

	m := SportsEvent(Event{Name: "Drift Günü", StartDate: "2024-06-15", Location: "Bakı", Past: true}, "Klub")
	assert.Equal(t, "SportsEvent", m["@type"])
	assert.Equal(t, "https://schema.org/EventCompleted", m["eventStatus"])
	assert.Equal(t, map[string]any{"@type": "Place", "name": "Bakı"}, m["location"])

	out := JSON(m)
	assert.Contains(t, out, `"name":"Drift Günü"`)
	assert.NotContains(t, out, "\n")
}

func TestOrganizationAndBreadcrumbs(t *testing.T) {
	t.Parallel()

	org := Organization("Klub", "https://motorsport.az", "", []string{"https://instagram.com/club"})
	assert.NotContains(t, org, "logo")
	assert.Equal(t, []string{"https://instagram.com/club"}, org["sameAs"])

	list := BreadcrumbList([]BreadcrumbItem{{Name: "Ana səhifə", Item: "https://motorsport.az/"}, {Name: "Qaydalar", Item: "https://motorsport.az/rules"}})
	items := list["itemListElement"].([]map[string]any)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, items[1]["position"])
	assert.Equal(t, `{"a":"<b>"}`, JSON(map[string]string{"a": "<b>"}))
}
