package domain

// FutharkOrder is the canonical Elder Futhark sequence. Registries and
// iteration follow this order regardless of how the content files happen to
// order their keys, so repeated runs see the same sequence.
var FutharkOrder = []string{
	"Fehu", "Uruz", "Thurisaz", "Ansuz", "Raidho",
	"Kenaz", "Gebo", "Wunjo", "Hagalaz", "Nauthiz",
	"Isa", "Jera", "Eihwaz", "Perthro", "Algiz",
	"Sowilo", "Tiwaz", "Berkano", "Ehwaz", "Mannaz",
	"Laguz", "Ingwaz", "Dagaz", "Othala",
}
