package models

type UserTier string

const (
	TierFree    UserTier = "free"
	TierPremium UserTier = "premium"
)

var tierHumanName = map[UserTier]string{
	TierFree:    "Бесплатный",
	TierPremium: "Премиум",
}

func (t UserTier) ToHuman() string {
	if human, exist := tierHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t UserTier) IsValid() bool {
	_, ok := tierHumanName[t]
	return ok
}

// Variant вариант модели генеративного бэкенда для тарифа
func (t UserTier) Variant() BackendVariant {
	if t == TierPremium {
		return VariantAdvanced
	}
	return VariantStandard
}

// BackendVariant выбор модели внутри провайдера (лёгкая или мощная)
type BackendVariant string

const (
	VariantStandard BackendVariant = "standard"
	VariantAdvanced BackendVariant = "advanced"
)
