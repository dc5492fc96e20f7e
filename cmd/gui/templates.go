package main

func getCSS() string {
	return `
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        :root {
            --primary-color: #667eea;
            --secondary-color: #764ba2;
            --success-color: #10B981;
            --danger-color: #EF4444;
            --dark-color: #1F2937;
            --light-color: #F9FAFB;
            --text-color: #374151;
            --border-radius: 12px;
            --box-shadow: 0 10px 25px rgba(0, 0, 0, 0.1);
        }

        body {
            font-family: 'Inter', 'Segoe UI', system-ui, -apple-system, sans-serif;
            background: linear-gradient(135deg, var(--primary-color) 0%, var(--secondary-color) 100%);
            min-height: 100vh;
            color: var(--text-color);
        }

        .app-container {
            max-width: 1100px;
            margin: 0 auto;
            padding: 40px 24px;
        }

        .header {
            text-align: center;
            color: white;
            margin-bottom: 32px;
        }

        .header h1 {
            font-size: 2.4em;
            margin-bottom: 6px;
        }

        .header p {
            opacity: 0.85;
        }

        .card {
            background: var(--light-color);
            border-radius: var(--border-radius);
            box-shadow: var(--box-shadow);
            padding: 28px;
            margin-bottom: 24px;
        }

        .controls {
            display: flex;
            gap: 16px;
            align-items: center;
            flex-wrap: wrap;
        }

        .controls input[type="file"] {
            flex: 1;
            padding: 12px;
            border: 2px dashed #d1d5db;
            border-radius: var(--border-radius);
            background: white;
        }

        .btn {
            background: linear-gradient(135deg, var(--primary-color), var(--secondary-color));
            color: white;
            border: none;
            border-radius: var(--border-radius);
            padding: 14px 28px;
            font-size: 1em;
            font-weight: 600;
            cursor: pointer;
            transition: transform 0.2s, opacity 0.2s;
        }

        .btn:hover:not(:disabled) {
            transform: translateY(-2px);
        }

        .btn:disabled {
            opacity: 0.5;
            cursor: not-allowed;
            transform: none;
        }

        .status-row {
            margin-top: 18px;
        }

        #status-message {
            font-weight: 600;
            margin-bottom: 10px;
            min-height: 1.3em;
        }

        #progress-bar {
            width: 100%;
            height: 10px;
            appearance: none;
            border: none;
            border-radius: 6px;
            overflow: hidden;
            display: none;
        }

        #progress-bar::-webkit-progress-bar {
            background: #e5e7eb;
        }

        #progress-bar::-webkit-progress-value {
            background: linear-gradient(90deg, var(--primary-color), var(--success-color));
        }

        #error-display {
            color: var(--danger-color);
            font-family: 'JetBrains Mono', monospace;
            font-size: 0.9em;
            min-height: 1.2em;
            margin-top: 8px;
            white-space: pre-wrap;
        }

        #plot-output {
            min-height: 320px;
        }

        #table-output {
            overflow-x: auto;
        }

        .summary-table {
            width: 100%;
            border-collapse: collapse;
        }

        .summary-table th,
        .summary-table td {
            padding: 10px 14px;
            text-align: left;
            border-bottom: 1px solid #e5e7eb;
        }

        .summary-table th {
            background: var(--dark-color);
            color: white;
        }

        .summary-table tr:nth-child(even) {
            background: #f3f4f6;
        }

        .section-title {
            font-size: 1.1em;
            font-weight: 700;
            color: var(--dark-color);
            margin-bottom: 14px;
        }
`
}

func getAppHTML() string {
	return `
        <div class="header">
            <h1>CSVScope</h1>
            <p>Upload a CSV file and run the analysis pipeline</p>
        </div>

        <div class="card">
            <div class="controls">
                <input type="file" id="file-input" accept=".csv,.lz4,text/csv" />
                <button class="btn" id="run-button" onclick="runAnalysis()">Run Analysis</button>
            </div>
            <div class="status-row">
                <div id="status-message">Ready. Select a data file and click Run Analysis.</div>
                <progress id="progress-bar" max="100" value="0"></progress>
                <div id="error-display"></div>
            </div>
        </div>

        <div class="card">
            <div class="section-title">Plot</div>
            <div id="plot-output"></div>
        </div>

        <div class="card">
            <div class="section-title">Summary</div>
            <div id="table-output"></div>
        </div>
`
}
