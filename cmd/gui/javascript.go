package main

func getJavaScript() string {
	return `
        // ui exposes the five display operations. The analysis backend
        // drives them through the event stream; displayPlot and friends can
        // also be called directly from the console for debugging.
        const ui = {
            setStatus(message) {
                document.getElementById('status-message').textContent = message;
                document.getElementById('progress-bar').style.display = 'none';
                document.getElementById('run-button').disabled = false;
            },

            updateProgress(value) {
                const bar = document.getElementById('progress-bar');
                bar.style.display = 'block';
                bar.value = value;
            },

            displayPlot(spec) {
                try {
                    const parsed = (typeof spec === 'string') ? JSON.parse(spec) : spec;
                    Plotly.newPlot('plot-output', parsed.data, parsed.layout || {});
                } catch (err) {
                    ui.displayError('Failed to render plot: ' + err.message);
                }
            },

            displayTable(html) {
                document.getElementById('table-output').innerHTML = html;
            },

            displayError(errorMsg) {
                console.error(errorMsg);
                document.getElementById('error-display').textContent = 'ERROR: ' + errorMsg;
                ui.setStatus('An error occurred, check console');
            }
        };
        window.ui = ui;

        // runAnalysis is the click handler for the run button. The button
        // is disabled for the duration of the run and re-enabled in the
        // finally block no matter how the run ends.
        async function runAnalysis() {
            const button = document.getElementById('run-button');
            button.disabled = true;
            document.getElementById('error-display').textContent = '';

            try {
                const input = document.getElementById('file-input');
                if (!input.files || input.files.length === 0) {
                    ui.displayError('Please select a data file first.');
                    return;
                }

                const content = await input.files[0].text();

                const response = await fetch('/api/analysis/run', {
                    method: 'POST',
                    headers: { 'Content-Type': 'text/csv' },
                    body: content
                });
                const result = await response.json();
                if (!result.success) {
                    ui.displayError(result.message);
                }
            } catch (err) {
                ui.displayError(err.message);
            } finally {
                button.disabled = false;
            }
        }

        // applyEvent routes one display event to the matching ui operation.
        function applyEvent(ev) {
            switch (ev.type) {
                case 'status':
                    ui.setStatus(ev.message);
                    break;
                case 'progress':
                    ui.updateProgress(ev.value || 0);
                    break;
                case 'plot':
                    ui.displayPlot(ev.spec);
                    break;
                case 'table':
                    ui.displayTable(ev.html);
                    break;
                case 'error':
                    // Cleared error region arrives as an empty message.
                    document.getElementById('error-display').textContent = ev.message || '';
                    break;
                case 'control':
                    document.getElementById('run-button').disabled = !ev.enabled;
                    break;
            }
        }

        // applyState paints a full snapshot, used when the stream (re)opens.
        function applyState(state) {
            document.getElementById('status-message').textContent = state.status;
            const bar = document.getElementById('progress-bar');
            bar.style.display = state.progress_visible ? 'block' : 'none';
            bar.value = state.progress_value || 0;
            if (state.plot) {
                ui.displayPlot(state.plot);
            }
            if (state.table) {
                ui.displayTable(state.table);
            }
            document.getElementById('error-display').textContent = state.error || '';
            document.getElementById('run-button').disabled = !state.control_enabled;
        }

        function connectEventStream() {
            const source = new EventSource('/api/analysis/events');

            source.onmessage = function (msg) {
                const frame = JSON.parse(msg.data);
                if (frame.type === 'state') {
                    applyState(frame.data);
                } else if (frame.type === 'event') {
                    applyEvent(frame.data);
                }
            };

            source.onerror = function () {
                source.close();
                setTimeout(connectEventStream, 2000);
            };
        }

        document.addEventListener('DOMContentLoaded', connectEventStream);
`
}
