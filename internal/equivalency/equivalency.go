// Package equivalency turns raw physical quantities into short
// human-readable comparisons against everyday reference points.
//
// All three formatters are pure functions that always produce a string
// for non-negative finite input. Negative or non-finite values are a
// caller contract violation; they are not validated here.
package equivalency

import "fmt"

// Everyday reference constants.
const (
	ledBulbWatts          = 1.0       // small LED bulb draw
	smartphoneChargeWh    = 10.0      // full smartphone charge
	laptopWatts           = 50.0      // typical laptop draw
	coffeeCupEnergyWh     = 40.0      // energy to brew one cup
	dropsPerML            = 20.0      // standard dropper
	dailyDrinkingWaterML  = 2000.0    // recommended daily intake
	coffeeCupML           = 250.0     // one cup
	waterBottleML         = 500.0     // one bottle
	carGramsPerKm         = 200.0     // average passenger car
	treeAbsorptionGPerDay = 48.0      // one mature tree, daily
)

// Magnitude tier boundaries.
const (
	energyLEDMaxWh        = 1.0
	energySmartphoneMaxWh = 5.0
	energyLaptopMaxWh     = 20.0

	waterDropsMaxML  = 10.0
	waterDailyMaxML  = 100.0
	waterCupMaxML    = 500.0

	carbonMetersMaxG = 50.0
	carbonKmMaxG     = 1000.0
)

// FormatEnergy phrases an energy amount (Wh) as an everyday equivalent.
func FormatEnergy(wh float64) string {
	switch {
	case wh < energyLEDMaxWh:
		minutes := (wh / ledBulbWatts) * 60.0
		return fmt.Sprintf("%.1f minutes of a 1W LED bulb", minutes)
	case wh < energySmartphoneMaxWh:
		pct := (wh / smartphoneChargeWh) * 100.0
		return fmt.Sprintf("%.1f%% of a smartphone charge", pct)
	case wh < energyLaptopMaxWh:
		minutes := (wh / laptopWatts) * 60.0
		return fmt.Sprintf("%.1f minutes of laptop use", minutes)
	default:
		cups := wh / coffeeCupEnergyWh
		return fmt.Sprintf("brewing %.2f cups of coffee", cups)
	}
}

// FormatWater phrases a water amount (mL) as an everyday equivalent.
func FormatWater(ml float64) string {
	switch {
	case ml < waterDropsMaxML:
		drops := ml * dropsPerML
		return fmt.Sprintf("%.0f drops of water", drops)
	case ml < waterDailyMaxML:
		pct := (ml / dailyDrinkingWaterML) * 100.0
		return fmt.Sprintf("%.2f%% of your daily drinking water", pct)
	case ml < waterCupMaxML:
		cups := ml / coffeeCupML
		return fmt.Sprintf("%.2f cups of water", cups)
	default:
		bottles := ml / waterBottleML
		return fmt.Sprintf("%.2f bottles of water (500mL)", bottles)
	}
}

// FormatCarbon phrases a carbon amount (gCO2e) as an everyday
// equivalent.
func FormatCarbon(g float64) string {
	switch {
	case g < carbonMetersMaxG:
		meters := (g / carGramsPerKm) * 1000.0
		return fmt.Sprintf("driving %.1f meters in a car", meters)
	case g < carbonKmMaxG:
		km := g / carGramsPerKm
		return fmt.Sprintf("driving %.2f km in a car", km)
	default:
		treeDays := g / treeAbsorptionGPerDay
		return fmt.Sprintf("%.1f tree-days to absorb", treeDays)
	}
}
