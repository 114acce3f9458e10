package blocksinfo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
)

const dateLayout = "2006-01-02 15:04:05"

// formatValue renders a raw blob value for display.
func formatValue(fn FormatFn, v any) (string, error) {
	switch fn {
	case FormatDate:
		t, err := model.ToInt64(v)
		if err != nil {
			return "", err
		}
		return time.Unix(t, 0).UTC().Format(dateLayout), nil
	case FormatInterval:
		d, err := model.ToInt64(v)
		if err != nil {
			return "", err
		}
		return formatInterval(d), nil
	case FormatCoin:
		sat, err := model.ToInt64(v)
		if err != nil {
			return "", err
		}
		return formatCoin(float64(sat)), nil
	case FormatSubsidy:
		sat, err := model.ToInt64(v)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(btcutil.Amount(sat).ToBTC(), 'f', -1, 64), nil
	case FormatSci:
		f, err := model.ToFloat64(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%.2e", f), nil
	default:
		switch x := v.(type) {
		case string:
			return x, nil
		case json.Number:
			return x.String(), nil
		default:
			return fmt.Sprint(x), nil
		}
	}
}

// formatAggregate renders an averaged or summed value; decimals applies to plain numbers.
func formatAggregate(fn FormatFn, v float64, decimals int) string {
	switch fn {
	case FormatInterval:
		return formatInterval(int64(v))
	case FormatCoin, FormatSubsidy:
		return formatCoin(v)
	case FormatSci:
		return fmt.Sprintf("%.2e", v)
	default:
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
}

func formatInterval(d int64) string {
	if d < 0 {
		return fmt.Sprintf("-%02d:%02d", -d/60, -d%60)
	}
	return fmt.Sprintf(" %02d:%02d", d/60, d%60)
}

func formatCoin(sat float64) string {
	return strconv.FormatFloat(sat/btcutil.SatoshiPerBitcoin, 'f', 8, 64)
}

// formatDuration renders seconds as hours, or days above two days.
func formatDuration(seconds float64) string {
	if seconds > 172800 {
		return fmt.Sprintf("%.2f days", seconds/86400)
	}
	return fmt.Sprintf("%.2f hrs", seconds/3600)
}
