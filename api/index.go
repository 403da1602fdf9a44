package api

// Minimal viewer over the predict endpoint. The map layer only consumes the
// GeoJSON of the response, nothing else is shared with the core.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<title>Predicted Track</title>
<meta charset="utf-8"/>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.6.0/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.6.0/dist/leaflet.js"></script>
<style>
body { font-family: sans-serif; margin: 1em; }
#map { height: 70vh; margin-top: 1em; }
#error { color: #b00; }
</style>
</head>
<body>
<h2>Aircraft Predicted Track</h2>
<form id="form">
<input type="file" name="samples" required/>
Latitude <input type="number" step="any" name="lat" value="0.0"/>
Longitude <input type="number" step="any" name="lon" value="0.0"/>
Interval (s) <input type="number" step="any" name="interval" value="1"/>
<button type="submit">Run</button>
<span id="links"></span>
<span id="error"></span>
</form>
<div id="map"></div>
<script>
var map = L.map('map').setView([0, 0], 2);
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
	attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
var layer = null;

document.getElementById('form').addEventListener('submit', function(e) {
	e.preventDefault();
	document.getElementById('error').textContent = '';
	fetch('/track/api/v1/predict', { method: 'POST', body: new FormData(e.target) })
		.then(function(resp) { return resp.json().then(function(body) { return { ok: resp.ok, body: body }; }); })
		.then(function(r) {
			if (!r.ok) {
				document.getElementById('error').textContent = r.body.error;
				return;
			}
			if (layer) { map.removeLayer(layer); }
			layer = L.geoJSON(r.body.geojson, {
				onEachFeature: function(feature, l) {
					if (feature.properties && feature.properties.name) {
						l.bindPopup(feature.properties.name);
					}
				}
			}).addTo(map);
			map.setView([r.body.points[0].lat, r.body.points[0].lon], 13);
			document.getElementById('links').innerHTML =
				'<a href="' + r.body.csv + '">CSV</a> <a href="' + r.body.kml + '">KML</a>';
		})
		.catch(function(err) { document.getElementById('error').textContent = err; });
});
</script>
</body>
</html>
`
