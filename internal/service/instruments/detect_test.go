package instruments

import (
	"reflect"
	"testing"
)

func TestDetectTickers(t *testing.T) {
	stocks, crypto := Detect("Should I buy AAPL or Tesla before the TSLA earnings?")
	if !reflect.DeepEqual(stocks, []string{"AAPL", "TSLA"}) {
		t.Fatalf("stocks = %v", stocks)
	}
	if len(crypto) != 0 {
		t.Fatalf("crypto = %v", crypto)
	}
}

func TestDetectCrypto(t *testing.T) {
	_, crypto := Detect("is bitcoin or ETH the better hold")
	if !reflect.DeepEqual(crypto, []string{"BTC", "ETH"}) {
		t.Fatalf("crypto = %v", crypto)
	}
}

func TestDetectTickerCaseSensitive(t *testing.T) {
	stocks, _ := Detect("aapl msft in lowercase are not tickers")
	if len(stocks) != 0 {
		t.Fatalf("lowercase ticker strings should not match, got %v", stocks)
	}
}

func TestDetectNothing(t *testing.T) {
	stocks, crypto := Detect("how do I save more each month")
	if len(stocks) != 0 || len(crypto) != 0 {
		t.Fatalf("expected no instruments, got %v %v", stocks, crypto)
	}
}
