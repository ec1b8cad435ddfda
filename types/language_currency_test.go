package types

import "testing"

func TestParseLanguageCode(t *testing.T) {
	valid := []string{"en", "en-US", "fr-CA", "zh-Hans", "pt-BR"}
	for _, v := range valid {
		if _, err := ParseLanguageCode(v); err != nil {
			t.Errorf("expected %s to be valid, got %v", v, err)
		}
	}
	invalid := []string{"", "english", "123", "e"}
	for _, v := range invalid {
		if _, err := ParseLanguageCode(v); err == nil {
			t.Errorf("expected %s to be invalid", v)
		}
	}
}

func TestParseCurrencyCode(t *testing.T) {
	if _, err := ParseCurrencyCode("USD"); err != nil {
		t.Errorf("USD should be valid: %v", err)
	}
	if _, err := ParseCurrencyCode("usd"); err != nil {
		t.Errorf("lowercase usd should normalize and be valid: %v", err)
	}
	if _, err := ParseCurrencyCode("ZZZ"); err == nil {
		t.Errorf("ZZZ should be invalid")
	}
}

func TestCurrencyFractionDigits(t *testing.T) {
	if got := CurrencyFractionDigits("JPY"); got != 0 {
		t.Errorf("JPY should have 0 fraction digits, got %d", got)
	}
	if got := CurrencyFractionDigits("BHD"); got != 3 {
		t.Errorf("BHD should have 3 fraction digits, got %d", got)
	}
	if got := CurrencyFractionDigits("USD"); got != 2 {
		t.Errorf("USD should default to 2 fraction digits, got %d", got)
	}
}

func TestAmountMatchesCurrencyScale(t *testing.T) {
	ok, err := AmountMatchesCurrencyScale("1.50", "USD")
	if err != nil || !ok {
		t.Errorf("1.50 USD should match scale: ok=%v err=%v", ok, err)
	}
	ok, err = AmountMatchesCurrencyScale("1.5", "USD")
	if err != nil || ok {
		t.Errorf("1.5 USD should NOT match the 2-digit scale: ok=%v err=%v", ok, err)
	}
	ok, err = AmountMatchesCurrencyScale("150", "JPY")
	if err != nil || !ok {
		t.Errorf("150 JPY should match the 0-digit scale: ok=%v err=%v", ok, err)
	}
}
