package dashboard

import (
	"html/template"
	"strconv"

	"github.com/dbsmedya/launchdash/internal/config"
)

// PageTitle is the heading of the layout page.
const PageTitle = "SpaceX Launch Records Dashboard"

type sliderMark struct {
	Value string
	Label string
}

type pageData struct {
	Title      string
	Options    []siteOption
	DropdownID string
	SliderID   string
	PieID      string
	ScatterID  string
	UpdatePath string
	Min        string
	Max        string
	Step       string
	Low        string
	High       string
	Marks      []sliderMark
	PieSrc     string
	ScatterSrc string
}

func newPageData(c *Controller, slider config.SliderConfig) pageData {
	defaults := c.Defaults()
	data := pageData{
		Title:      PageTitle,
		Options:    siteOptions(c.Dataset()),
		DropdownID: SiteDropdownID,
		SliderID:   PayloadSliderID,
		PieID:      SuccessPieChartID,
		ScatterID:  SuccessPayloadChartID,
		UpdatePath: PathUpdate,
		Min:        formatNumber(slider.Min),
		Max:        formatNumber(slider.Max),
		Step:       formatNumber(slider.Step),
		Low:        formatNumber(defaults.Range.Min),
		High:       formatNumber(defaults.Range.Max),
		PieSrc:     chartSrc(SuccessPieChartID, defaults),
		ScatterSrc: chartSrc(SuccessPayloadChartID, defaults),
	}
	for _, m := range slider.EffectiveMarks() {
		v := formatNumber(m)
		data.Marks = append(data.Marks, sliderMark{Value: v, Label: v})
	}
	return data
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var pageTemplate = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0 auto; max-width: 960px; }
h1 { text-align: center; color: #503d36; font-size: 40px; }
.slider { display: flex; gap: 1em; align-items: center; }
.chart img { width: 100%; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<select id="{{.DropdownID}}">
{{- range .Options}}
<option value="{{.Value}}">{{.Label}}</option>
{{- end}}
</select>
<br>
<div class="chart"><img id="{{.PieID}}" src="{{.PieSrc}}" alt="launch success pie chart"></div>
<br>
<p>Payload range (Kg):</p>
<div class="slider" id="{{.SliderID}}">
<input type="range" name="low" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Low}}" list="payload-marks">
<input type="range" name="high" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.High}}" list="payload-marks">
<output></output>
</div>
<datalist id="payload-marks">
{{- range .Marks}}
<option value="{{.Value}}" label="{{.Label}}"></option>
{{- end}}
</datalist>
<div class="chart"><img id="{{.ScatterID}}" src="{{.ScatterSrc}}" alt="payload vs launch outcome scatter chart"></div>
<script>
(function () {
  var dropdown = document.getElementById({{.DropdownID}});
  var slider = document.getElementById({{.SliderID}});
  var low = slider.querySelector('input[name=low]');
  var high = slider.querySelector('input[name=high]');
  var label = slider.querySelector('output');

  function range() {
    var a = parseFloat(low.value), b = parseFloat(high.value);
    return a <= b ? [a, b] : [b, a];
  }

  function update(changed) {
    var r = range();
    label.textContent = r[0] + ' - ' + r[1] + ' kg';
    var body = {changed: [changed], "payload-slider": r};
    body[{{.DropdownID}}] = dropdown.value;
    fetch({{.UpdatePath}}, {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(body)
    }).then(function (resp) { return resp.json(); }).then(function (outputs) {
      Object.keys(outputs).forEach(function (id) {
        var img = document.getElementById(id);
        if (img && outputs[id].src) { img.src = outputs[id].src; }
      });
    });
  }

  dropdown.addEventListener('change', function () { update({{.DropdownID}}); });
  low.addEventListener('change', function () { update({{.SliderID}}); });
  high.addEventListener('change', function () { update({{.SliderID}}); });
  label.textContent = range()[0] + ' - ' + range()[1] + ' kg';
})();
</script>
</body>
</html>
`))
