package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/mash"
	"github.com/brewsmith/brewsmith/internal/style"
	"github.com/brewsmith/brewsmith/internal/water"
)

// openRecipeOrHint loads the currently open recipe, printing a hint when
// nothing is open or the load fails.
func (a *builderApp) openRecipeOrHint(ctx context.Context) *domain.Recipe {
	if a.recipeID == "" {
		a.ui.PrintHint("No recipe open. Use 'open <id>' first ('list' shows ids).")
		return nil
	}
	r, err := a.engine.GetRecipe(ctx, a.recipeID)
	if err != nil {
		a.ui.PrintHint(fmt.Sprintf("Couldn't load recipe %s: %v", a.recipeID, err))
		return nil
	}
	return r
}

// saveOrReport persists an edited recipe and reports validation failures.
func (a *builderApp) saveOrReport(ctx context.Context, r *domain.Recipe, okMsg string) {
	if err := a.engine.UpdateRecipe(ctx, r); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Not saved: %v", err))
		return
	}
	a.ui.PrintBody(okMsg)
}

func (a *builderApp) showRecipes(ctx context.Context) {
	summaries, err := a.engine.ListRecipes(ctx)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't list recipes: %v", err))
		return
	}
	if len(summaries) == 0 {
		a.ui.PrintHint("No recipes yet. Try 'new <name>'.")
		return
	}
	a.ui.PrintHeading("Recipes:")
	for _, s := range summaries {
		line := fmt.Sprintf("  %-24s v%-3d %s", s.ID, s.Version, s.Name)
		if s.StyleCode != "" {
			line += fmt.Sprintf("  (%s)", s.StyleCode)
		}
		if s.ID == a.recipeID {
			line += "  <- open"
		}
		a.ui.PrintBody(line)
	}
}

func (a *builderApp) newRecipe(ctx context.Context, args []string) {
	if len(args) == 0 {
		a.ui.PrintHint("Usage: new <name>")
		return
	}
	name := strings.Join(args, " ")
	r, err := a.engine.CreateRecipe(ctx, name)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't create recipe: %v", err))
		return
	}
	a.recipeID = r.ID
	a.ui.PrintBody(fmt.Sprintf("Created %q (%s) and opened it. %.0f L batch, standard equipment.", r.Name, r.ID, r.BatchVolumeL))
}

func (a *builderApp) openRecipe(ctx context.Context, args []string) {
	if len(args) == 0 {
		a.ui.PrintHint("Usage: open <id>")
		return
	}
	r, err := a.engine.GetRecipe(ctx, args[0])
	if err != nil {
		a.ui.PrintHint(fmt.Sprintf("No recipe %q: %v", args[0], err))
		return
	}
	a.recipeID = r.ID
	a.ui.PrintBody(fmt.Sprintf("Opened %q (v%d).", r.Name, r.Version))
}

func (a *builderApp) deleteRecipe(ctx context.Context, args []string) {
	id := a.recipeID
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" {
		a.ui.PrintHint("Usage: delete <id>")
		return
	}
	if err := a.engine.DeleteRecipe(ctx, id); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't delete %s: %v", id, err))
		return
	}
	if id == a.recipeID {
		a.recipeID = ""
	}
	a.ui.PrintBody(fmt.Sprintf("Deleted %s.", id))
}

func (a *builderApp) showRecipe(ctx context.Context) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	a.ui.PrintHeading(fmt.Sprintf("%s (v%d)", r.Name, r.Version))
	if r.StyleCode != "" {
		if spec, ok := style.Lookup(r.StyleCode); ok {
			a.ui.PrintBody(fmt.Sprintf("  Style: %s %s", spec.Code, spec.Name))
		} else {
			a.ui.PrintBody(fmt.Sprintf("  Style: %s (no ranges on file)", r.StyleCode))
		}
	}
	a.ui.PrintBody(fmt.Sprintf("  Batch: %.1f L, boil %.0f min", r.BatchVolumeL, r.Equipment.BoilTimeMin))

	if len(r.Fermentables) > 0 {
		a.ui.PrintBody("  Fermentables:")
		for i, f := range r.Fermentables {
			a.ui.PrintBody(fmt.Sprintf("    %d. %-24s %5.2f kg  %4.0f L  %2.0f ppg", i+1, f.Name, f.WeightKg, f.Lovibond, f.PPG))
		}
	}
	if len(r.Hops) > 0 {
		a.ui.PrintBody("  Hops:")
		for i, h := range r.Hops {
			a.ui.PrintBody(fmt.Sprintf("    %d. %-18s %4.1f%% AA  %5.0f g  %s", i+1, h.Name, h.AlphaAcidPct, h.WeightG, hopTiming(h)))
		}
	}
	if len(r.Yeasts) > 0 {
		for _, y := range r.Yeasts {
			a.ui.PrintBody(fmt.Sprintf("  Yeast: %s (%.0f%% attenuation)", y.Name, y.AttenuationPct))
		}
	}
	if len(r.MashSteps) > 0 {
		a.ui.PrintBody(fmt.Sprintf("  Mash: %d step(s), 'mash' shows the resolved schedule", len(r.MashSteps)))
	}
	if len(r.FermentationSteps) > 0 {
		a.ui.PrintBody("  Fermentation:")
		for _, fs := range r.FermentationSteps {
			a.ui.PrintBody(fmt.Sprintf("    %-16s %4.1f C for %.0f days", fs.Name, fs.TempC, fs.Days))
		}
	}
	if r.Water != nil {
		a.ui.PrintBody("  Water chemistry set ('water' shows the final profile)")
	}
	for _, o := range r.Others {
		a.ui.PrintBody(fmt.Sprintf("  Other: %s, %.1f %s at %s", o.Name, o.Amount, o.Unit, o.AddedAt))
	}
}

func hopTiming(h domain.Hop) string {
	switch h.Use {
	case domain.HopBoil:
		return fmt.Sprintf("boil %.0f min", h.BoilMin)
	case domain.HopWhirlpool:
		return fmt.Sprintf("whirlpool %.0f C / %.0f min", h.WhirlpoolTempC, h.WhirlpoolMin)
	case domain.HopDry:
		return fmt.Sprintf("dry hop day %d for %d days", h.DryHopStartDay, h.DryHopDays)
	case domain.HopFirstWort:
		return "first wort"
	case domain.HopMash:
		return "mash"
	default:
		return string(h.Use)
	}
}

func (a *builderApp) showStats(ctx context.Context) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	calcs := a.engine.CalculateRecipe(r)

	a.ui.PrintHeading(fmt.Sprintf("%s: the numbers", r.Name))
	a.ui.PrintBody(fmt.Sprintf("  OG   %.3f", calcs.OG))
	if calcs.HasYeast {
		a.ui.PrintBody(fmt.Sprintf("  FG   %.3f", calcs.FG))
		a.ui.PrintBody(fmt.Sprintf("  ABV  %.1f%%", calcs.ABVPct))
		a.ui.PrintBody(fmt.Sprintf("  Cal  %.0f kcal / 12 oz (%.1f g carbs)", calcs.Calories, calcs.CarbsG))
	} else {
		a.ui.PrintHint("  FG/ABV: no yeast selected yet")
	}
	a.ui.PrintBody(fmt.Sprintf("  IBU  %.0f", calcs.IBU))
	a.ui.PrintBody(fmt.Sprintf("  SRM  %.1f", calcs.SRM))

	if len(calcs.HopIBUs) > 0 {
		a.ui.PrintBody("  Bitterness by addition:")
		for _, hb := range calcs.HopIBUs {
			a.ui.PrintBody(fmt.Sprintf("    %-18s %-10s %5.1f IBU  (%.0f%% util)", hb.Name, hb.Use, hb.IBU, hb.Utilization*100))
		}
	}

	v := calcs.Volumes
	a.ui.PrintBody("  Volumes:")
	a.ui.PrintBody(fmt.Sprintf("    mash %.1f L + sparge %.1f L = %.1f L total water", v.MashWaterL, v.SpargeWaterL, v.TotalWaterL))
	a.ui.PrintBody(fmt.Sprintf("    pre-boil %.1f L -> post-boil %.1f L -> fermenter %.1f L -> packaged %.1f L", v.PreBoilL, v.PostBoilL, v.IntoFermenterL, v.PackagedL))
	a.ui.PrintBody(fmt.Sprintf("    grain absorbs %.1f L", v.GrainAbsorptionL))
}

func (a *builderApp) setBatch(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(args) == 0 {
		a.ui.PrintBody(fmt.Sprintf("Batch volume: %.1f L", r.BatchVolumeL))
		return
	}
	liters, err := parseFloatArg(args[0], "liters")
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	r.BatchVolumeL = liters
	a.saveOrReport(ctx, r, fmt.Sprintf("Batch volume set to %.1f L.", liters))
}

// equipFields maps the names accepted by 'equip <field> <value>' onto the
// equipment profile.
var equipFields = map[string]func(*domain.EquipmentProfile, float64){
	"boiltime":    func(e *domain.EquipmentProfile, v float64) { e.BoilTimeMin = v },
	"boiloff":     func(e *domain.EquipmentProfile, v float64) { e.BoilOffRateLPerHr = v },
	"efficiency":  func(e *domain.EquipmentProfile, v float64) { e.MashEfficiencyPct = v },
	"thickness":   func(e *domain.EquipmentProfile, v float64) { e.MashThicknessLPerKg = v },
	"absorption":  func(e *domain.EquipmentProfile, v float64) { e.GrainAbsorptionLKg = v },
	"deadspace":   func(e *domain.EquipmentProfile, v float64) { e.MashTunDeadspaceL = v },
	"kettleloss":  func(e *domain.EquipmentProfile, v float64) { e.KettleLossL = v },
	"hopabsorb":   func(e *domain.EquipmentProfile, v float64) { e.HopAbsorptionLKg = v },
	"chillerloss": func(e *domain.EquipmentProfile, v float64) { e.ChillerLossL = v },
	"fermloss":    func(e *domain.EquipmentProfile, v float64) { e.FermenterLossL = v },
	"shrinkage":   func(e *domain.EquipmentProfile, v float64) { e.CoolingShrinkagePct = v },
}

func (a *builderApp) equip(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(args) == 0 {
		eq := r.Equipment
		a.ui.PrintHeading("Equipment profile:")
		a.ui.PrintBody(fmt.Sprintf("  boiltime    %.0f min        boiloff     %.1f L/hr", eq.BoilTimeMin, eq.BoilOffRateLPerHr))
		a.ui.PrintBody(fmt.Sprintf("  efficiency  %.0f %%          thickness   %.1f L/kg", eq.MashEfficiencyPct, eq.MashThicknessLPerKg))
		a.ui.PrintBody(fmt.Sprintf("  absorption  %.1f L/kg      deadspace   %.1f L", eq.GrainAbsorptionLKg, eq.MashTunDeadspaceL))
		a.ui.PrintBody(fmt.Sprintf("  kettleloss  %.1f L         hopabsorb   %.1f L/kg", eq.KettleLossL, eq.HopAbsorptionLKg))
		a.ui.PrintBody(fmt.Sprintf("  chillerloss %.1f L         fermloss    %.1f L", eq.ChillerLossL, eq.FermenterLossL))
		a.ui.PrintBody(fmt.Sprintf("  shrinkage   %.1f %%", eq.CoolingShrinkagePct))
		a.ui.PrintHint("Set one with 'equip <field> <value>'.")
		return
	}
	if len(args) < 2 {
		a.ui.PrintHint("Usage: equip <field> <value>")
		return
	}
	set, ok := equipFields[strings.ToLower(args[0])]
	if !ok {
		a.ui.PrintHint(fmt.Sprintf("Unknown equipment field %q. 'equip' lists them.", args[0]))
		return
	}
	v, err := parseFloatArg(args[1], args[0])
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	set(&r.Equipment, v)
	a.saveOrReport(ctx, r, fmt.Sprintf("Equipment %s set to %g.", strings.ToLower(args[0]), v))
}

func (a *builderApp) grainAdd(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(args) < 4 {
		a.ui.PrintHint("Usage: grain add <name> <kg> <lovibond> <ppg> [efficiency%]")
		return
	}
	// Name may be several words; the last 3 (or 4) args are numbers.
	numeric := 3
	if len(args) >= 5 {
		if _, err := strconv.ParseFloat(args[len(args)-4], 64); err == nil {
			numeric = 4
		}
	}
	nameEnd := len(args) - numeric
	if nameEnd < 1 {
		a.ui.PrintHint("Usage: grain add <name> <kg> <lovibond> <ppg> [efficiency%]")
		return
	}
	f := domain.Fermentable{Name: strings.Join(args[:nameEnd], " ")}
	nums, err := parseFloats(args[nameEnd:])
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	f.WeightKg, f.Lovibond, f.PPG = nums[0], nums[1], nums[2]
	if len(nums) == 4 {
		f.EfficiencyPct = nums[3]
	}
	r.Fermentables = append(r.Fermentables, f)
	a.saveOrReport(ctx, r, fmt.Sprintf("Added %.2f kg %s.", f.WeightKg, f.Name))
}

func (a *builderApp) grainRemove(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	idx, err := parseIndexArg(args, len(r.Fermentables), "fermentable")
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	removed := r.Fermentables[idx]
	r.Fermentables = append(r.Fermentables[:idx], r.Fermentables[idx+1:]...)
	a.saveOrReport(ctx, r, fmt.Sprintf("Removed %s.", removed.Name))
}

func (a *builderApp) hopAdd(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	usage := "Usage: hop add <name> <aa%> <g> boil <min> | whirlpool <tempC> <min> | dry <startDay> <days> | firstwort | mash"

	// Find the use keyword; everything before the two numbers preceding it
	// is the hop name.
	useIdx := -1
	for i, arg := range args {
		switch domain.HopUse(strings.ToLower(arg)) {
		case domain.HopBoil, domain.HopWhirlpool, domain.HopDry, domain.HopFirstWort, domain.HopMash:
			useIdx = i
		}
		if useIdx >= 0 {
			break
		}
	}
	if useIdx < 3 {
		a.ui.PrintHint(usage)
		return
	}

	h := domain.Hop{
		Name: strings.Join(args[:useIdx-2], " "),
		Use:  domain.HopUse(strings.ToLower(args[useIdx])),
	}
	nums, err := parseFloats(args[useIdx-2 : useIdx])
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	h.AlphaAcidPct, h.WeightG = nums[0], nums[1]

	rest, err := parseFloats(args[useIdx+1:])
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	switch h.Use {
	case domain.HopBoil:
		if len(rest) < 1 {
			a.ui.PrintHint(usage)
			return
		}
		h.BoilMin = rest[0]
	case domain.HopWhirlpool:
		if len(rest) < 2 {
			a.ui.PrintHint(usage)
			return
		}
		h.WhirlpoolTempC, h.WhirlpoolMin = rest[0], rest[1]
	case domain.HopDry:
		if len(rest) < 2 {
			a.ui.PrintHint(usage)
			return
		}
		h.DryHopStartDay, h.DryHopDays = int(rest[0]), int(rest[1])
	}

	r.Hops = append(r.Hops, h)
	a.saveOrReport(ctx, r, fmt.Sprintf("Added %.0f g %s (%s).", h.WeightG, h.Name, hopTiming(h)))
}

func (a *builderApp) hopRemove(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	idx, err := parseIndexArg(args, len(r.Hops), "hop")
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	removed := r.Hops[idx]
	r.Hops = append(r.Hops[:idx], r.Hops[idx+1:]...)
	a.saveOrReport(ctx, r, fmt.Sprintf("Removed %s.", removed.Name))
}

func (a *builderApp) setYeast(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(args) < 2 {
		a.ui.PrintHint("Usage: yeast <name> <attenuation%>")
		return
	}
	att, err := parseFloatArg(args[len(args)-1], "attenuation")
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	y := domain.Yeast{Name: strings.Join(args[:len(args)-1], " "), AttenuationPct: att}
	r.Yeasts = []domain.Yeast{y}
	a.saveOrReport(ctx, r, fmt.Sprintf("Yeast set to %s at %.0f%% attenuation.", y.Name, y.AttenuationPct))
}

func (a *builderApp) fermAdd(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(args) < 3 {
		a.ui.PrintHint("Usage: ferm add <name> <tempC> <days>")
		return
	}
	nums, err := parseFloats(args[len(args)-2:])
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	fs := domain.FermentationStep{
		Name:  strings.Join(args[:len(args)-2], " "),
		TempC: nums[0],
		Days:  nums[1],
	}
	r.FermentationSteps = append(r.FermentationSteps, fs)
	a.saveOrReport(ctx, r, fmt.Sprintf("Added fermentation step %s: %.1f C for %.0f days.", fs.Name, fs.TempC, fs.Days))
}

func (a *builderApp) mashPreset(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(args) == 0 {
		a.ui.PrintHint("Usage: mash preset single|step")
		return
	}
	grainKg := r.TotalGrainKg()
	switch strings.ToLower(args[0]) {
	case "single":
		r.MashSteps = mash.SingleInfusion(grainKg, r.Equipment)
	case "step":
		r.MashSteps = mash.StepMash(grainKg, r.Equipment)
	default:
		a.ui.PrintHint(fmt.Sprintf("Unknown preset %q. Options: single, step.", args[0]))
		return
	}
	a.saveOrReport(ctx, r, fmt.Sprintf("Installed the %s mash preset (%d steps).", strings.ToLower(args[0]), len(r.MashSteps)))
}

func (a *builderApp) mashAdd(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	usage := "Usage: mash add <name> <infusion|temperature|decoction> <tempC> <min>"
	if len(args) < 4 {
		a.ui.PrintHint(usage)
		return
	}
	stepType := domain.MashStepType(strings.ToLower(args[len(args)-3]))
	switch stepType {
	case domain.MashInfusion, domain.MashTemperature, domain.MashDecoction:
	default:
		a.ui.PrintHint(usage)
		return
	}
	nums, err := parseFloats(args[len(args)-2:])
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	step := domain.MashStep{
		Name:        strings.Join(args[:len(args)-3], " "),
		Type:        stepType,
		TargetTempC: nums[0],
		DurationMin: nums[1],
	}
	r.MashSteps = append(r.MashSteps, step)
	a.saveOrReport(ctx, r, fmt.Sprintf("Added mash step %s: %s to %.1f C for %.0f min.", step.Name, step.Type, step.TargetTempC, step.DurationMin))
}

func (a *builderApp) mashRemove(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	idx, err := parseIndexArg(args, len(r.MashSteps), "mash step")
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	removed := r.MashSteps[idx]
	r.MashSteps = append(r.MashSteps[:idx], r.MashSteps[idx+1:]...)
	a.saveOrReport(ctx, r, fmt.Sprintf("Removed mash step %s.", removed.Name))
}

func (a *builderApp) mashShow(ctx context.Context) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(r.MashSteps) == 0 {
		a.ui.PrintHint("No mash schedule. Try 'mash preset single' or 'mash add'.")
		return
	}
	schedule := mash.Resolve(r.MashSteps, r.TotalGrainKg(), r.Equipment.MashThicknessLPerKg, mash.DefaultGrainTempC)

	a.ui.PrintHeading(fmt.Sprintf("Mash schedule (%.2f kg grain, %.1f L/kg):", r.TotalGrainKg(), r.Equipment.MashThicknessLPerKg))
	for i, rs := range schedule.Steps {
		line := fmt.Sprintf("  %d. %-16s %-12s %4.1f C for %3.0f min", i+1, rs.Name, rs.Type, rs.TargetTempC, rs.DurationMin)
		if rs.Type == domain.MashInfusion {
			line += fmt.Sprintf("  (add %.1f L at %.1f C)", rs.InfusionVolumeL, rs.InfusionTempC)
		}
		line += fmt.Sprintf("  mash: %.1f L", rs.MashVolumeL)
		a.ui.PrintBody(line)
		for _, warn := range mash.Validate(rs.MashStep) {
			a.ui.PrintHint("     ! " + warn)
		}
	}
	a.ui.PrintBody(fmt.Sprintf("  Total: %.0f min, %.1f L of infusions.", schedule.TotalTimeMin(), schedule.TotalInfusionL()))
}

func (a *builderApp) waterSource(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(args) < 6 {
		a.ui.PrintHint("Usage: water source <Ca> <Mg> <Na> <Cl> <SO4> <HCO3>  (ppm)")
		return
	}
	nums, err := parseFloats(args[:6])
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	if r.Water == nil {
		r.Water = &domain.WaterChemistry{}
	}
	r.Water.Source = domain.WaterProfile{
		CalciumPPM:     nums[0],
		MagnesiumPPM:   nums[1],
		SodiumPPM:      nums[2],
		ChloridePPM:    nums[3],
		SulfatePPM:     nums[4],
		BicarbonatePPM: nums[5],
	}
	a.saveOrReport(ctx, r, "Source water profile set.")
}

func (a *builderApp) setSalts(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(args) < 5 {
		a.ui.PrintHint("Usage: salts <gypsum> <CaCl2> <epsom> <NaCl> <NaHCO3>  (grams)")
		return
	}
	nums, err := parseFloats(args[:5])
	if err != nil {
		a.ui.PrintHint(err.Error())
		return
	}
	if r.Water == nil {
		r.Water = &domain.WaterChemistry{}
	}
	r.Water.Salts = domain.SaltAdditions{
		GypsumG:          nums[0],
		CalciumChlorideG: nums[1],
		EpsomSaltG:       nums[2],
		TableSaltG:       nums[3],
		BakingSodaG:      nums[4],
	}
	a.saveOrReport(ctx, r, "Salt additions set.")
}

func (a *builderApp) waterShow(ctx context.Context) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if r.Water == nil {
		a.ui.PrintHint("No water chemistry. Try 'water source' and 'salts'.")
		return
	}
	calcs := a.engine.CalculateRecipe(r)
	totalL := calcs.Volumes.TotalWaterL
	final := water.FinalProfile(r.Water.Source, r.Water.Salts, totalL)

	a.ui.PrintHeading(fmt.Sprintf("Water (%.1f L total):", totalL))
	printProfile := func(label string, p domain.WaterProfile) {
		a.ui.PrintBody(fmt.Sprintf("  %-7s Ca %3.0f  Mg %3.0f  Na %3.0f  Cl %3.0f  SO4 %3.0f  HCO3 %3.0f",
			label, p.CalciumPPM, p.MagnesiumPPM, p.SodiumPPM, p.ChloridePPM, p.SulfatePPM, p.BicarbonatePPM))
	}
	printProfile("source", r.Water.Source)
	printProfile("final", final)

	split := water.SplitSalts(r.Water.Salts, calcs.Volumes.MashWaterL, calcs.Volumes.SpargeWaterL)
	printSalts := func(label string, s domain.SaltAdditions, liters float64) {
		a.ui.PrintBody(fmt.Sprintf("  %-7s (%.1f L): gypsum %.1f g, CaCl2 %.1f g, epsom %.1f g, NaCl %.1f g, NaHCO3 %.1f g",
			label, liters, s.GypsumG, s.CalciumChlorideG, s.EpsomSaltG, s.TableSaltG, s.BakingSodaG))
	}
	printSalts("mash", split.Mash, calcs.Volumes.MashWaterL)
	printSalts("sparge", split.Sparge, calcs.Volumes.SpargeWaterL)
}

func (a *builderApp) setStyle(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(args) == 0 {
		a.ui.PrintHint("Usage: style <code>  (e.g. style 18B)")
		return
	}
	code := strings.ToUpper(args[0])
	spec, ok := style.Lookup(code)
	if !ok {
		a.ui.PrintHint(fmt.Sprintf("No ranges on file for %s. Setting it anyway; 'compare' won't work.", code))
	}
	r.StyleCode = code
	msg := fmt.Sprintf("Style set to %s.", code)
	if ok {
		msg = fmt.Sprintf("Style set to %s %s.", spec.Code, spec.Name)
	}
	a.saveOrReport(ctx, r, msg)
}

func (a *builderApp) compareStyle(ctx context.Context) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	spec, comparisons, err := a.engine.CompareStyle(ctx, r.ID)
	if err != nil {
		a.ui.PrintHint(fmt.Sprintf("Can't compare: %v", err))
		return
	}
	a.ui.PrintHeading(fmt.Sprintf("%s vs %s %s:", r.Name, spec.Code, spec.Name))
	for _, mc := range comparisons {
		var line string
		if mc.Metric == "OG" || mc.Metric == "FG" {
			line = fmt.Sprintf("  %-4s %7.3f  [%.3f - %.3f]  %s", mc.Metric, mc.Value, mc.Min, mc.Max, mc.Verdict)
		} else {
			line = fmt.Sprintf("  %-4s %7.1f  [%.1f - %.1f]  %s", mc.Metric, mc.Value, mc.Min, mc.Max, mc.Verdict)
		}
		switch mc.Verdict {
		case style.InRange:
			a.ui.PrintGood(line)
		case style.Below, style.Above:
			a.ui.PrintUrgent(line)
		default:
			a.ui.PrintHint(fmt.Sprintf("  %-4s no data", mc.Metric))
		}
	}
}

func (a *builderApp) saveVersion(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	notes := strings.Join(args, " ")
	v, err := a.engine.SaveVersion(ctx, r.ID, notes)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't save version: %v", err))
		return
	}
	a.ui.PrintBody(fmt.Sprintf("Saved v%d (%s).", v.Version, v.ID))
}

func (a *builderApp) showVersions(ctx context.Context) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	versions, err := a.engine.ListVersions(ctx, r.ID)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't list versions: %v", err))
		return
	}
	if len(versions) == 0 {
		a.ui.PrintHint("No saved versions. 'save [notes]' snapshots the recipe.")
		return
	}
	a.ui.PrintHeading(fmt.Sprintf("Versions of %s:", r.Name))
	for _, v := range versions {
		line := fmt.Sprintf("  v%-3d %s  %s", v.Version, v.ID, v.CreatedAt.Format("2006-01-02 15:04"))
		if v.Notes != "" {
			line += "  " + v.Notes
		}
		a.ui.PrintBody(line)
	}
}

func (a *builderApp) restoreVersion(ctx context.Context, args []string) {
	r := a.openRecipeOrHint(ctx)
	if r == nil {
		return
	}
	if len(args) == 0 {
		a.ui.PrintHint("Usage: restore <version-id>  ('versions' lists them)")
		return
	}
	restored, err := a.engine.RestoreVersion(ctx, r.ID, args[0])
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't restore: %v", err))
		return
	}
	a.ui.PrintBody(fmt.Sprintf("Restored %q as v%d. The previous state was snapshotted first.", restored.Name, restored.Version))
}

// parseFloatArg parses one numeric argument, naming it in the error.
func parseFloatArg(arg, name string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, arg)
	}
	return v, nil
}

// parseFloats parses a run of numeric arguments.
func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", arg)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseIndexArg parses a 1-based list position and returns the 0-based index.
func parseIndexArg(args []string, length int, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("which %s? Give its number from 'show'", what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > length {
		return 0, fmt.Errorf("no %s #%s (there are %d)", what, args[0], length)
	}
	return n - 1, nil
}
