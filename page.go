package main

// panelPage is the whole presentation layer: mode buttons, the sensor grid
// and the color-coded status line, refreshed over the websocket feed.
const panelPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Linux Performance Switcher</title>
<style>
  body { background: #2e3440; color: #d8dee9; font-family: sans-serif;
         max-width: 420px; margin: 0 auto; padding: 15px; }
  h1 { font-size: 18px; text-align: center; }
  #power-limit { text-align: center; color: #88c0d0; font-weight: bold; }
  table { width: 100%; margin: 12px 0; }
  td { padding: 4px 6px; font-weight: bold; }
  td.value { color: #88c0d0; }
  button { display: block; width: 100%; margin: 6px 0; padding: 10px;
           font-size: 14px; color: #eceff4; background: #4c566a;
           border: none; border-radius: 4px; cursor: pointer; }
  button:hover { background: #5e81ac; }
  #status { margin-top: 12px; text-align: center; min-height: 2em; }
  .info { color: #88c0d0; } .success { color: #a3be8c; }
  .warning { color: #ebcb8b; } .error { color: #bf616a; }
</style>
</head>
<body>
<h1>Linux Performance Switcher</h1>
<div id="power-limit">Detecting GPU Info...</div>
<table>
  <tr><td>GPU Temp:</td><td class="value" id="gpu_temp">--</td>
      <td>CPU Temp:</td><td class="value" id="cpu_temp">--</td></tr>
  <tr><td>GPU Power:</td><td class="value" id="gpu_power">--</td>
      <td>CPU Governor:</td><td class="value" id="cpu_governor">--</td></tr>
  <tr><td>CPU Usage:</td><td class="value" id="cpu_usage">--</td>
      <td>CPU Freq:</td><td class="value" id="cpu_freq">--</td></tr>
  <tr><td>Memory:</td><td class="value" id="memory_usage">--</td><td></td><td></td></tr>
</table>
<button onclick="setMode('ai')">AI Mode On</button>
<button onclick="setMode('desktop')">Desktop Mode On</button>
<button onclick="setMode('powersave')">Power-Save Mode On</button>
<div id="status" class="info">Select a mode to begin</div>
<script>
function showStatus(st) {
  var el = document.getElementById('status');
  el.textContent = st.text;
  el.className = st.level;
}
function render(p) {
  document.getElementById('power-limit').textContent = p.max_power_limit;
  var snap = p.snapshot;
  for (var key in snap) {
    var el = document.getElementById(key);
    if (el) { el.textContent = snap[key]; }
  }
  showStatus(p.status);
}
function setMode(name) {
  showStatus({level: 'info', text: 'Setting mode...'});
  fetch('/api/mode/' + name, {method: 'POST'})
    .then(function(r) { return r.json(); })
    .then(showStatus)
    .catch(function(e) { showStatus({level: 'error', text: 'Request failed: ' + e}); });
}
var ws = new WebSocket('ws://' + location.host + '/ws');
ws.onmessage = function(ev) { render(JSON.parse(ev.data)); };
fetch('/api/status').then(function(r) { return r.json(); }).then(render);
</script>
</body>
</html>
`
